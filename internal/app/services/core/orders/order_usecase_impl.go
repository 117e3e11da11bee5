package orders

import (
	"context"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type orderUsecase struct {
	OrderRepository     contracts.OrderRepository
	CourierScheduler    contracts.CourierScheduler
	NotificationService contracts.NotificationService
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

var (
	orderUsecaseInstance contracts.OrderUsecase
	onceOrderUsecase     sync.Once
)

func NewOrderUsecase(
	orderRepository contracts.OrderRepository,
	courierScheduler contracts.CourierScheduler,
	notificationService contracts.NotificationService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OrderUsecase {
	onceOrderUsecase.Do(func() {
		instance := &orderUsecase{
			OrderRepository:     orderRepository,
			CourierScheduler:    courierScheduler,
			NotificationService: notificationService,
			InternalConfig:      internalConfig,
			Log:                 logger,
		}
		orderUsecaseInstance = instance
	})
	return orderUsecaseInstance
}

func (uc *orderUsecase) CreateOrder(ctx context.Context, request *requests.CreateOrder) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if len(request.Items) == 0 {
		return nil, exceptions.ErrOrderItemsEmpty(nil)
	}
	if request.DeliveryAddress == "" {
		return nil, exceptions.ErrDeliveryAddressMissing(nil)
	}

	items := make([]models.OrderItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, models.OrderItem{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	total := models.ComputeTotal(items)
	if total <= 0 {
		return nil, exceptions.ErrOrderTotalNotPositive(nil)
	}

	now := time.Now()
	order := &models.Order{
		PatientID:       request.PatientID,
		PatientName:     request.PatientName,
		PharmacyID:      request.PharmacyID,
		PharmacyName:    request.PharmacyName,
		PharmacyBranch:  request.PharmacyBranch,
		Items:           items,
		Total:           total,
		DeliveryAddress: request.DeliveryAddress,
		PaymentMethod:   request.PaymentMethod,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PlacedAt:        now,
		UpdatedAt:       now,
	}

	orderID, err := uc.OrderRepository.CreateOrder(ctx, order)
	if err != nil {
		uc.Log.Error("orderUsecase.CreateOrder error creating order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	order.ID = orderID

	uc.notify(ctx, order.PharmacyID, requests.NotificationOrderCreated, order)

	uc.Log.Info("orderUsecase.CreateOrder completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)
	return buildOrderResponse(order), nil
}

func (uc *orderUsecase) FindOrderByID(ctx context.Context, orderID string) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.FindOrderByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	order, err := uc.mustFind(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(order), nil
}

func (uc *orderUsecase) SubmitPayment(ctx context.Context, request *requests.SubmitPayment) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.SubmitPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.mustFind(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus != models.PaymentPending {
		return nil, exceptions.ErrOrderPaymentNotProcessing(string(current.PaymentStatus))
	}

	updated, err := uc.OrderRepository.SubmitPayment(ctx, request.OrderID, request.TransactionRef)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		current, err = uc.mustFind(ctx, request.OrderID)
		if err != nil {
			return nil, err
		}
		return nil, exceptions.ErrOrderPaymentNotProcessing(string(current.PaymentStatus))
	}

	uc.notify(ctx, updated.PharmacyID, requests.NotificationOrderPaymentSubmitted, updated)

	uc.Log.Info("orderUsecase.SubmitPayment completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
	)
	return buildOrderResponse(updated), nil
}

// ApplyPaymentOutcome is called by the payment verification gate after a
// transaction reaches a terminal state. A matched-nothing write here means
// the outcome was already applied, which the gate treats as a no-op.
func (uc *orderUsecase) ApplyPaymentOutcome(ctx context.Context, orderID string, outcome models.VerificationOutcome) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.ApplyPaymentOutcome called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingStatusKey, string(outcome)),
	)

	current, err := uc.mustFind(ctx, orderID)
	if err != nil {
		return err
	}

	updated, err := uc.OrderRepository.ApplyPaymentOutcome(ctx, orderID, outcome)
	if err != nil {
		return err
	}
	if updated == nil {
		alreadyApplied := (outcome == models.OutcomePaid && current.PaymentStatus == models.PaymentPaid) ||
			(outcome == models.OutcomeRejected && current.PaymentStatus == models.PaymentRejected)
		if alreadyApplied {
			return nil
		}
		return exceptions.ErrOrderPaymentNotProcessing(string(current.PaymentStatus))
	}

	kind := requests.NotificationOrderPaid
	if outcome == models.OutcomeRejected {
		kind = requests.NotificationOrderCancelled
	}
	uc.notify(ctx, updated.PatientID, kind, updated)

	uc.Log.Info("orderUsecase.ApplyPaymentOutcome completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, updated.ID),
		zap.String(constvars.LoggingStatusKey, string(updated.Status)),
	)
	return nil
}

func (uc *orderUsecase) AssignCourier(ctx context.Context, request *requests.AssignCourier) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.AssignCourier called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
		zap.String(constvars.LoggingCourierIDKey, request.CourierID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.mustFind(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus != models.PaymentPaid {
		return nil, exceptions.ErrOrderPaymentNotPaid(string(current.PaymentStatus))
	}
	if current.Status != models.OrderProcessing {
		return nil, exceptions.ErrOrderStatusNotProcessing(string(current.Status))
	}

	dispatched, err := uc.CourierScheduler.Assign(ctx, request.OrderID, request.CourierID)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, dispatched.PatientID, requests.NotificationOrderDispatched, dispatched)

	uc.Log.Info("orderUsecase.AssignCourier completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, dispatched.ID),
		zap.String(constvars.LoggingCourierIDKey, request.CourierID),
	)
	return buildOrderResponse(dispatched), nil
}

func (uc *orderUsecase) MarkDelivered(ctx context.Context, orderID string) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.MarkDelivered called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	current, err := uc.mustFind(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.OrderDispatched {
		return nil, exceptions.ErrOrderStatusNotDispatched(string(current.Status))
	}

	delivered, err := uc.OrderRepository.MarkDelivered(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if delivered == nil {
		current, err = uc.mustFind(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return nil, exceptions.ErrOrderStatusNotDispatched(string(current.Status))
	}

	uc.notify(ctx, delivered.PatientID, requests.NotificationOrderDelivered, delivered)

	uc.Log.Info("orderUsecase.MarkDelivered completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, delivered.ID),
	)
	return buildOrderResponse(delivered), nil
}

func (uc *orderUsecase) CancelOrder(ctx context.Context, request *requests.CancelOrder) (*responses.Order, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("orderUsecase.CancelOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.mustFind(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsCancellable() {
		return nil, exceptions.ErrOrderNotCancellable(string(current.Status))
	}

	cancelled, err := uc.OrderRepository.Cancel(ctx, request.OrderID, request.Reason)
	if err != nil {
		return nil, err
	}
	if cancelled == nil {
		current, err = uc.mustFind(ctx, request.OrderID)
		if err != nil {
			return nil, err
		}
		return nil, exceptions.ErrOrderNotCancellable(string(current.Status))
	}

	uc.notify(ctx, cancelled.PatientID, requests.NotificationOrderCancelled, cancelled)

	uc.Log.Info("orderUsecase.CancelOrder completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, cancelled.ID),
	)
	return buildOrderResponse(cancelled), nil
}

func (uc *orderUsecase) mustFind(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := uc.OrderRepository.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, exceptions.ErrOrderNotFound(nil)
	}
	return order, nil
}

func (uc *orderUsecase) notify(ctx context.Context, userID, kind string, order *models.Order) {
	err := uc.NotificationService.Notify(ctx, &requests.Notification{
		UserID: userID,
		Kind:   kind,
		Payload: map[string]interface{}{
			"orderId":       order.ID,
			"status":        order.Status,
			"paymentStatus": order.PaymentStatus,
		},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("orderUsecase failed to publish notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, order.ID),
			zap.String(constvars.LoggingNotificationKey, kind),
			zap.Error(err),
		)
	}
}

func buildOrderResponse(order *models.Order) *responses.Order {
	return &responses.Order{
		Order:       *order,
		DisplayCode: utils.DisplayCode(order.ID),
	}
}
