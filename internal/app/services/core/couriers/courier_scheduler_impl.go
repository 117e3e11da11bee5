package couriers

import (
	"context"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type courierScheduler struct {
	CourierRepository contracts.CourierRepository
	OrderRepository   contracts.OrderRepository
	RedisRepository   contracts.RedisRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	courierSchedulerInstance contracts.CourierScheduler
	onceCourierScheduler     sync.Once
)

func NewCourierScheduler(
	courierRepository contracts.CourierRepository,
	orderRepository contracts.OrderRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CourierScheduler {
	onceCourierScheduler.Do(func() {
		instance := &courierScheduler{
			CourierRepository: courierRepository,
			OrderRepository:   orderRepository,
			RedisRepository:   redisRepository,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
		courierSchedulerInstance = instance
	})
	return courierSchedulerInstance
}

// FindEligible returns the couriers a dispatcher may pick from. The list is
// a short-TTL cached read model; the authoritative availability check
// happens again inside Assign.
func (s *courierScheduler) FindEligible(ctx context.Context) (*responses.CourierList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("courierScheduler.FindEligible called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if cached := s.readCache(ctx); cached != nil {
		return &responses.CourierList{Couriers: cached}, nil
	}

	couriers, err := s.CourierRepository.ListByStatus(ctx, models.CourierAvailable)
	if err != nil {
		s.Log.Error("courierScheduler.FindEligible error listing couriers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	s.writeCache(ctx, couriers)
	return &responses.CourierList{Couriers: couriers}, nil
}

// Assign performs the dispatch hand-off. The courier claim runs first
// because the courier document is the only record both competing orders
// touch; the order write then gates on paid/processing/no-courier. If the
// order side fails after a successful claim, the claim is rolled back on a
// best-effort basis.
func (s *courierScheduler) Assign(ctx context.Context, orderID, courierID string) (*models.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("courierScheduler.Assign called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingCourierIDKey, courierID),
	)

	courier, err := s.CourierRepository.FindByID(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if courier == nil {
		return nil, exceptions.ErrCourierNotFound(nil)
	}
	if !courier.Eligible() {
		return nil, exceptions.ErrCourierUnavailable(string(courier.Status))
	}

	claimed, err := s.CourierRepository.ClaimAvailable(ctx, courierID)
	if err != nil {
		return nil, err
	}
	if claimed == nil {
		s.Log.Warn("courierScheduler.Assign lost courier claim race",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCourierIDKey, courierID),
		)
		return nil, exceptions.ErrCourierClaimed()
	}

	dispatched, err := s.OrderRepository.AssignCourier(ctx, orderID, claimed.ID, claimed.Name)
	if err != nil {
		s.release(ctx, courierID)
		return nil, err
	}
	if dispatched == nil {
		// Roll the claim back and report the order's actual state; another
		// caller changed it between the usecase guard and this write.
		s.release(ctx, courierID)
		order, err := s.OrderRepository.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, exceptions.ErrOrderNotFound(nil)
		}
		if order.PaymentStatus != models.PaymentPaid {
			return nil, exceptions.ErrOrderPaymentNotPaid(string(order.PaymentStatus))
		}
		return nil, exceptions.ErrOrderStatusNotProcessing(string(order.Status))
	}

	s.invalidateCache(ctx)

	s.Log.Info("courierScheduler.Assign completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, dispatched.ID),
		zap.String(constvars.LoggingCourierIDKey, courierID),
	)
	return dispatched, nil
}

func (s *courierScheduler) release(ctx context.Context, courierID string) {
	err := s.CourierRepository.Release(ctx, courierID)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Warn("courierScheduler failed to release courier claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCourierIDKey, courierID),
			zap.Error(err),
		)
	}
}

func (s *courierScheduler) readCache(ctx context.Context) []models.Courier {
	if s.RedisRepository == nil {
		return nil
	}
	data, err := s.RedisRepository.Get(ctx, constvars.RedisKeyAvailableCouriers)
	if err != nil || data == "" {
		return nil
	}
	var couriers []models.Courier
	if err := json.Unmarshal([]byte(data), &couriers); err != nil {
		return nil
	}
	return couriers
}

func (s *courierScheduler) writeCache(ctx context.Context, couriers []models.Courier) {
	if s.RedisRepository == nil {
		return
	}
	ttl := time.Duration(s.InternalConfig.Fulfillment.CourierCacheTTLInSeconds) * time.Second
	err := s.RedisRepository.Set(ctx, constvars.RedisKeyAvailableCouriers, couriers, ttl)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Warn("courierScheduler failed to cache courier list",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (s *courierScheduler) invalidateCache(ctx context.Context) {
	if s.RedisRepository == nil {
		return
	}
	err := s.RedisRepository.Delete(ctx, constvars.RedisKeyAvailableCouriers)
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		s.Log.Warn("courierScheduler failed to invalidate courier cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}
