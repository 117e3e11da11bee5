package couriers

import (
	"context"
	"sync"
	"testing"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCourierRepository struct {
	mu    sync.Mutex
	store map[string]*models.Courier
}

func newFakeCourierRepository(couriers ...*models.Courier) *fakeCourierRepository {
	repository := &fakeCourierRepository{store: make(map[string]*models.Courier)}
	for _, courier := range couriers {
		clone := *courier
		repository.store[courier.ID] = &clone
	}
	return repository
}

func (r *fakeCourierRepository) statusOf(courierID string) models.CourierStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store[courierID].Status
}

func (r *fakeCourierRepository) FindByID(_ context.Context, courierID string) (*models.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courier, ok := r.store[courierID]
	if !ok {
		return nil, nil
	}
	clone := *courier
	return &clone, nil
}

func (r *fakeCourierRepository) ListByStatus(_ context.Context, status models.CourierStatus) ([]models.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var couriers []models.Courier
	for _, courier := range r.store {
		if courier.Status == status {
			couriers = append(couriers, *courier)
		}
	}
	return couriers, nil
}

func (r *fakeCourierRepository) ClaimAvailable(_ context.Context, courierID string) (*models.Courier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	courier, ok := r.store[courierID]
	if !ok || courier.Status != models.CourierAvailable {
		return nil, nil
	}
	courier.Status = models.CourierBusy
	courier.UpdatedAt = time.Now()
	clone := *courier
	return &clone, nil
}

func (r *fakeCourierRepository) Release(_ context.Context, courierID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	courier, ok := r.store[courierID]
	if ok && courier.Status == models.CourierBusy {
		courier.Status = models.CourierAvailable
		courier.UpdatedAt = time.Now()
	}
	return nil
}

// fakeAssignmentOrderRepository covers the two order methods the scheduler
// touches during a hand-off.
type fakeAssignmentOrderRepository struct {
	mu    sync.Mutex
	store map[string]*models.Order
}

func newFakeAssignmentOrderRepository(orders ...*models.Order) *fakeAssignmentOrderRepository {
	repository := &fakeAssignmentOrderRepository{store: make(map[string]*models.Order)}
	for _, order := range orders {
		clone := *order
		repository.store[order.ID] = &clone
	}
	return repository
}

func (r *fakeAssignmentOrderRepository) CreateOrder(_ context.Context, _ *models.Order) (string, error) {
	return "", nil
}

func (r *fakeAssignmentOrderRepository) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (r *fakeAssignmentOrderRepository) SubmitPayment(_ context.Context, _, _ string) (*models.Order, error) {
	return nil, nil
}

func (r *fakeAssignmentOrderRepository) ApplyPaymentOutcome(_ context.Context, _ string, _ models.VerificationOutcome) (*models.Order, error) {
	return nil, nil
}

func (r *fakeAssignmentOrderRepository) AssignCourier(_ context.Context, orderID, courierID, courierName string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok || order.Status != models.OrderProcessing || order.PaymentStatus != models.PaymentPaid || order.CourierID != "" {
		return nil, nil
	}
	now := time.Now()
	order.Status = models.OrderDispatched
	order.CourierID = courierID
	order.CourierName = courierName
	order.DispatchedAt = &now
	order.UpdatedAt = now
	clone := *order
	return &clone, nil
}

func (r *fakeAssignmentOrderRepository) MarkDelivered(_ context.Context, _ string) (*models.Order, error) {
	return nil, nil
}

func (r *fakeAssignmentOrderRepository) Cancel(_ context.Context, _, _ string) (*models.Order, error) {
	return nil, nil
}

type fakeRedisRepository struct {
	mu    sync.Mutex
	store map[string]string
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{store: make(map[string]string)}
}

func (r *fakeRedisRepository) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[key] = string(data)
	return nil
}

func (r *fakeRedisRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store[key], nil
}

func (r *fakeRedisRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, key)
	return nil
}

func newTestCourierScheduler(courierRepository *fakeCourierRepository, orderRepository *fakeAssignmentOrderRepository, redisRepository *fakeRedisRepository) *courierScheduler {
	scheduler := &courierScheduler{
		CourierRepository: courierRepository,
		OrderRepository:   orderRepository,
		InternalConfig: &config.InternalConfig{
			Fulfillment: config.Fulfillment{CourierCacheTTLInSeconds: 15},
		},
		Log: zap.NewNop(),
	}
	if redisRepository != nil {
		scheduler.RedisRepository = redisRepository
	}
	return scheduler
}

func availableCourier(id string) *models.Courier {
	return &models.Courier{ID: id, Name: "Courier " + id, VehicleType: "motorcycle", Status: models.CourierAvailable, Rating: 4.8}
}

func paidProcessingOrder(id string) *models.Order {
	now := time.Now()
	return &models.Order{
		ID:            id,
		PatientID:     "patient-1",
		PharmacyID:    "pharmacy-1",
		Status:        models.OrderProcessing,
		PaymentStatus: models.PaymentPaid,
		PlacedAt:      now,
		UpdatedAt:     now,
	}
}

func TestFindEligible(t *testing.T) {
	t.Run("busy and offline couriers are excluded", func(t *testing.T) {
		busy := availableCourier("courier-2")
		busy.Status = models.CourierBusy
		offline := availableCourier("courier-3")
		offline.Status = models.CourierOffline
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"), busy, offline)
		scheduler := newTestCourierScheduler(courierRepository, newFakeAssignmentOrderRepository(), nil)

		result, err := scheduler.FindEligible(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Couriers, 1)
		assert.Equal(t, "courier-1", result.Couriers[0].ID)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"))
		redisRepository := newFakeRedisRepository()
		scheduler := newTestCourierScheduler(courierRepository, newFakeAssignmentOrderRepository(), redisRepository)

		first, err := scheduler.FindEligible(context.Background())
		require.NoError(t, err)
		require.Len(t, first.Couriers, 1)

		// Mutate the store directly; the cached read model should not see it
		// until the TTL lapses or an assignment invalidates it.
		courierRepository.mu.Lock()
		courierRepository.store["courier-1"].Status = models.CourierOffline
		courierRepository.mu.Unlock()

		second, err := scheduler.FindEligible(context.Background())
		require.NoError(t, err)
		assert.Len(t, second.Couriers, 1)
	})
}

func TestAssign(t *testing.T) {
	t.Run("claims the courier and dispatches the order", func(t *testing.T) {
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"))
		orderRepository := newFakeAssignmentOrderRepository(paidProcessingOrder("order-1"))
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, nil)

		dispatched, err := scheduler.Assign(context.Background(), "order-1", "courier-1")
		require.NoError(t, err)
		assert.Equal(t, models.OrderDispatched, dispatched.Status)
		assert.Equal(t, "courier-1", dispatched.CourierID)
		assert.Equal(t, models.CourierBusy, courierRepository.statusOf("courier-1"))
	})

	t.Run("busy courier is refused", func(t *testing.T) {
		busy := availableCourier("courier-1")
		busy.Status = models.CourierBusy
		courierRepository := newFakeCourierRepository(busy)
		orderRepository := newFakeAssignmentOrderRepository(paidProcessingOrder("order-1"))
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, nil)

		_, err := scheduler.Assign(context.Background(), "order-1", "courier-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPrecondition))
	})

	t.Run("two orders racing for one courier resolve to one winner", func(t *testing.T) {
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"))
		orderRepository := newFakeAssignmentOrderRepository(
			paidProcessingOrder("order-1"),
			paidProcessingOrder("order-2"),
		)
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, nil)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, orderID := range []string{"order-1", "order-2"} {
			wg.Add(1)
			go func(i int, orderID string) {
				defer wg.Done()
				_, errs[i] = scheduler.Assign(context.Background(), orderID, "courier-1")
			}(i, orderID)
		}
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			if exceptions.IsKind(err, exceptions.KindConflict) || exceptions.IsKind(err, exceptions.KindPrecondition) {
				conflicts++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)
		assert.Equal(t, models.CourierBusy, courierRepository.statusOf("courier-1"))
	})

	t.Run("claim is released when the order write fails", func(t *testing.T) {
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"))
		order := paidProcessingOrder("order-1")
		order.PaymentStatus = models.PaymentProcessing
		orderRepository := newFakeAssignmentOrderRepository(order)
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, nil)

		_, err := scheduler.Assign(context.Background(), "order-1", "courier-1")
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPrecondition))
		assert.Equal(t, models.CourierAvailable, courierRepository.statusOf("courier-1"), "failed hand-off returns the claim")
	})

	t.Run("unknown courier", func(t *testing.T) {
		courierRepository := newFakeCourierRepository()
		orderRepository := newFakeAssignmentOrderRepository(paidProcessingOrder("order-1"))
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, nil)

		_, err := scheduler.Assign(context.Background(), "order-1", "courier-missing")
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})

	t.Run("successful assignment invalidates the cache", func(t *testing.T) {
		courierRepository := newFakeCourierRepository(availableCourier("courier-1"))
		orderRepository := newFakeAssignmentOrderRepository(paidProcessingOrder("order-1"))
		redisRepository := newFakeRedisRepository()
		scheduler := newTestCourierScheduler(courierRepository, orderRepository, redisRepository)

		_, err := scheduler.FindEligible(context.Background())
		require.NoError(t, err)

		_, err = scheduler.Assign(context.Background(), "order-1", "courier-1")
		require.NoError(t, err)

		result, err := scheduler.FindEligible(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result.Couriers, "claimed courier must disappear from the eligible list")
	})
}
