package orders

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeOrderRepository keeps the mongo implementation's conditional-write
// contract: each transition matches on the expected prior state under a lock
// and returns (nil, nil) when nothing matched.
type fakeOrderRepository struct {
	mu    sync.Mutex
	seq   int
	store map[string]*models.Order
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{store: make(map[string]*models.Order)}
}

func (r *fakeOrderRepository) seed(order *models.Order) *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", r.seq)
	}
	clone := *order
	r.store[order.ID] = &clone
	return order
}

func (r *fakeOrderRepository) CreateOrder(_ context.Context, order *models.Order) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	id := fmt.Sprintf("order-%d", r.seq)
	clone := *order
	clone.ID = id
	r.store[id] = &clone
	return id, nil
}

func (r *fakeOrderRepository) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepository) SubmitPayment(_ context.Context, orderID, transactionRef string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok || order.PaymentStatus != models.PaymentPending {
		return nil, nil
	}
	order.PaymentStatus = models.PaymentProcessing
	order.TransactionRef = transactionRef
	order.UpdatedAt = time.Now()
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepository) ApplyPaymentOutcome(_ context.Context, orderID string, outcome models.VerificationOutcome) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok || order.PaymentStatus != models.PaymentProcessing || order.Status != models.OrderPending {
		return nil, nil
	}
	now := time.Now()
	if outcome == models.OutcomePaid {
		order.PaymentStatus = models.PaymentPaid
		order.Status = models.OrderProcessing
		order.ProcessingAt = &now
	} else {
		order.PaymentStatus = models.PaymentRejected
		order.Status = models.OrderCancelled
		order.CancelReason = "payment rejected"
		order.CancelledAt = &now
	}
	order.UpdatedAt = now
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepository) AssignCourier(_ context.Context, orderID, courierID, courierName string) (*models.Order, error) {
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

func (r *fakeOrderRepository) MarkDelivered(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok || order.Status != models.OrderDispatched {
		return nil, nil
	}
	now := time.Now()
	order.Status = models.OrderDelivered
	order.DeliveredAt = &now
	order.UpdatedAt = now
	clone := *order
	return &clone, nil
}

func (r *fakeOrderRepository) Cancel(_ context.Context, orderID, reason string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.store[orderID]
	if !ok || !order.Status.IsCancellable() {
		return nil, nil
	}
	now := time.Now()
	order.Status = models.OrderCancelled
	order.CancelReason = reason
	order.CancelledAt = &now
	order.UpdatedAt = now
	clone := *order
	return &clone, nil
}

// stubCourierScheduler performs the order-side write directly so the usecase
// hand-off can be exercised without the courier claim machinery.
type stubCourierScheduler struct {
	repository *fakeOrderRepository
}

func (s *stubCourierScheduler) FindEligible(_ context.Context) (*responses.CourierList, error) {
	return &responses.CourierList{}, nil
}

func (s *stubCourierScheduler) Assign(ctx context.Context, orderID, courierID string) (*models.Order, error) {
	dispatched, err := s.repository.AssignCourier(ctx, orderID, courierID, "Stub Courier")
	if err != nil {
		return nil, err
	}
	if dispatched == nil {
		return nil, exceptions.ErrOrderStatusNotProcessing("unknown")
	}
	return dispatched, nil
}

type fakeNotificationService struct {
	mu    sync.Mutex
	kinds []string
}

func (s *fakeNotificationService) Notify(_ context.Context, notification *requests.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kinds = append(s.kinds, notification.Kind)
	return nil
}

func newTestOrderUsecase(repository *fakeOrderRepository) (*orderUsecase, *fakeNotificationService) {
	notifier := &fakeNotificationService{}
	uc := &orderUsecase{
		OrderRepository:     repository,
		CourierScheduler:    &stubCourierScheduler{repository: repository},
		NotificationService: notifier,
		InternalConfig:      &config.InternalConfig{},
		Log:                 zap.NewNop(),
	}
	return uc, notifier
}

func pendingOrder() *models.Order {
	now := time.Now()
	return &models.Order{
		PatientID:       "patient-1",
		PatientName:     "Siti Rahma",
		PharmacyID:      "pharmacy-1",
		PharmacyName:    "Apotek Sentosa",
		Items:           []models.OrderItem{{ItemID: "med-1", Name: "Paracetamol 500mg", Quantity: 2, Price: 12000}},
		Total:           24000,
		DeliveryAddress: "Jl. Merdeka No. 1, Jakarta",
		PaymentMethod:   "bank_transfer",
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PlacedAt:        now,
		UpdatedAt:       now,
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, notifier := newTestOrderUsecase(repository)

		result, err := uc.CreateOrder(context.Background(), &requests.CreateOrder{
			PatientID:       "patient-1",
			PatientName:     "Siti Rahma",
			PharmacyID:      "pharmacy-1",
			PharmacyName:    "Apotek Sentosa",
			Items:           []requests.OrderItem{{ItemID: "med-1", Name: "Paracetamol 500mg", Quantity: 2, Price: 12000}},
			DeliveryAddress: "Jl. Merdeka No. 1, Jakarta",
			PaymentMethod:   "bank_transfer",
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderPending, result.Status)
		assert.Equal(t, models.PaymentPending, result.PaymentStatus)
		assert.Equal(t, float64(24000), result.Total)
		assert.NotEmpty(t, result.DisplayCode)
		assert.Equal(t, []string{requests.NotificationOrderCreated}, notifier.kinds)
	})

	t.Run("missing delivery address", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)

		_, err := uc.CreateOrder(context.Background(), &requests.CreateOrder{
			PatientID:     "patient-1",
			PatientName:   "Siti Rahma",
			PharmacyID:    "pharmacy-1",
			PharmacyName:  "Apotek Sentosa",
			Items:         []requests.OrderItem{{ItemID: "med-1", Name: "Paracetamol 500mg", Quantity: 2, Price: 12000}},
			PaymentMethod: "bank_transfer",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("empty items", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)

		_, err := uc.CreateOrder(context.Background(), &requests.CreateOrder{
			PatientID:       "patient-1",
			PatientName:     "Siti Rahma",
			PharmacyID:      "pharmacy-1",
			PharmacyName:    "Apotek Sentosa",
			DeliveryAddress: "Jl. Merdeka No. 1, Jakarta",
			PaymentMethod:   "bank_transfer",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})
}

func TestSubmitPayment(t *testing.T) {
	t.Run("pending payment moves to processing", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := repository.seed(pendingOrder())

		result, err := uc.SubmitPayment(context.Background(), &requests.SubmitPayment{
			OrderID:        order.ID,
			TransactionRef: "trx-77",
		})
		require.NoError(t, err)
		assert.Equal(t, models.PaymentProcessing, result.PaymentStatus)
		assert.Equal(t, models.OrderPending, result.Status, "submitting payment never advances order status")
		assert.Equal(t, "trx-77", result.TransactionRef)
	})

	t.Run("second submission is refused", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := repository.seed(pendingOrder())

		_, err := uc.SubmitPayment(context.Background(), &requests.SubmitPayment{OrderID: order.ID, TransactionRef: "trx-77"})
		require.NoError(t, err)

		_, err = uc.SubmitPayment(context.Background(), &requests.SubmitPayment{OrderID: order.ID, TransactionRef: "trx-78"})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
	})
}

func TestApplyPaymentOutcome(t *testing.T) {
	t.Run("paid advances order to processing", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentProcessing
		repository.seed(order)

		err := uc.ApplyPaymentOutcome(context.Background(), order.ID, models.OutcomePaid)
		require.NoError(t, err)

		stored, _ := repository.FindByID(context.Background(), order.ID)
		assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
		assert.Equal(t, models.OrderProcessing, stored.Status)
		assert.NotNil(t, stored.ProcessingAt)
	})

	t.Run("rejected cancels the order", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentProcessing
		repository.seed(order)

		err := uc.ApplyPaymentOutcome(context.Background(), order.ID, models.OutcomeRejected)
		require.NoError(t, err)

		stored, _ := repository.FindByID(context.Background(), order.ID)
		assert.Equal(t, models.PaymentRejected, stored.PaymentStatus)
		assert.Equal(t, models.OrderCancelled, stored.Status)
	})

	t.Run("re-applying the same outcome is a no-op", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, notifier := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentProcessing
		repository.seed(order)

		require.NoError(t, uc.ApplyPaymentOutcome(context.Background(), order.ID, models.OutcomePaid))
		notified := len(notifier.kinds)

		require.NoError(t, uc.ApplyPaymentOutcome(context.Background(), order.ID, models.OutcomePaid))
		assert.Len(t, notifier.kinds, notified, "re-run must not emit a second notification")
	})

	t.Run("payment not yet submitted", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := repository.seed(pendingOrder())

		err := uc.ApplyPaymentOutcome(context.Background(), order.ID, models.OutcomePaid)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
	})
}

func TestAssignCourier(t *testing.T) {
	t.Run("paid processing order gets dispatched", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, notifier := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.Status = models.OrderProcessing
		order.PaymentStatus = models.PaymentPaid
		repository.seed(order)

		result, err := uc.AssignCourier(context.Background(), &requests.AssignCourier{
			OrderID:   order.ID,
			CourierID: "courier-1",
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderDispatched, result.Status)
		assert.Equal(t, "courier-1", result.CourierID)
		assert.Contains(t, notifier.kinds, requests.NotificationOrderDispatched)
	})

	t.Run("unpaid order is refused", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.Status = models.OrderProcessing
		order.PaymentStatus = models.PaymentProcessing
		repository.seed(order)

		_, err := uc.AssignCourier(context.Background(), &requests.AssignCourier{
			OrderID:   order.ID,
			CourierID: "courier-1",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPrecondition))
	})

	t.Run("pending order is refused even when paid flag arrives early", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.PaymentStatus = models.PaymentPaid
		repository.seed(order)

		_, err := uc.AssignCourier(context.Background(), &requests.AssignCourier{
			OrderID:   order.ID,
			CourierID: "courier-1",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindPrecondition))
	})
}

func TestMarkDelivered(t *testing.T) {
	t.Run("dispatched order is delivered", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.Status = models.OrderDispatched
		order.PaymentStatus = models.PaymentPaid
		order.CourierID = "courier-1"
		repository.seed(order)

		result, err := uc.MarkDelivered(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderDelivered, result.Status)
		assert.NotNil(t, result.DeliveredAt)
	})

	t.Run("undelivered states are refused", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := repository.seed(pendingOrder())

		_, err := uc.MarkDelivered(context.Background(), order.ID)
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := repository.seed(pendingOrder())

		result, err := uc.CancelOrder(context.Background(), &requests.CancelOrder{
			OrderID: order.ID,
			Reason:  "patient changed mind",
		})
		require.NoError(t, err)
		assert.Equal(t, models.OrderCancelled, result.Status)
		assert.Equal(t, "patient changed mind", result.CancelReason)
	})

	t.Run("dispatched order cannot be cancelled", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)
		order := pendingOrder()
		order.Status = models.OrderDispatched
		order.PaymentStatus = models.PaymentPaid
		repository.seed(order)

		_, err := uc.CancelOrder(context.Background(), &requests.CancelOrder{
			OrderID: order.ID,
			Reason:  "too late",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidState))

		stored, _ := repository.FindByID(context.Background(), order.ID)
		assert.Equal(t, models.OrderDispatched, stored.Status)
	})

	t.Run("unknown order", func(t *testing.T) {
		repository := newFakeOrderRepository()
		uc, _ := newTestOrderUsecase(repository)

		_, err := uc.CancelOrder(context.Background(), &requests.CancelOrder{
			OrderID: "order-missing",
			Reason:  "whatever",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
	})
}
