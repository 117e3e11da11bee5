package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
)

// OrderRepository is the ledger-store access layer for orders. Every
// transition method is a single conditional write: the filter carries the
// expected prior state and the method returns (nil, nil) when no document
// matched it, so the usecase can re-read and classify what actually happened.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (string, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)

	// SubmitPayment moves paymentStatus pending -> processing.
	SubmitPayment(ctx context.Context, orderID, transactionRef string) (*models.Order, error)
	// ApplyPaymentOutcome moves paymentStatus processing -> paid/rejected and
	// advances status to processing or cancelled accordingly.
	ApplyPaymentOutcome(ctx context.Context, orderID string, outcome models.VerificationOutcome) (*models.Order, error)
	// AssignCourier writes courier identity and status processing -> dispatched,
	// conditional on paymentStatus paid and no courier being set yet.
	AssignCourier(ctx context.Context, orderID, courierID, courierName string) (*models.Order, error)
	// MarkDelivered moves status dispatched -> delivered.
	MarkDelivered(ctx context.Context, orderID string) (*models.Order, error)
	// Cancel moves status pending/processing -> cancelled.
	Cancel(ctx context.Context, orderID, reason string) (*models.Order, error)
}

type OrderUsecase interface {
	CreateOrder(ctx context.Context, request *requests.CreateOrder) (*responses.Order, error)
	FindOrderByID(ctx context.Context, orderID string) (*responses.Order, error)
	SubmitPayment(ctx context.Context, request *requests.SubmitPayment) (*responses.Order, error)
	AssignCourier(ctx context.Context, request *requests.AssignCourier) (*responses.Order, error)
	MarkDelivered(ctx context.Context, orderID string) (*responses.Order, error)
	CancelOrder(ctx context.Context, request *requests.CancelOrder) (*responses.Order, error)

	// ApplyPaymentOutcome is invoked by the payment verification gate once a
	// transaction reaches a terminal state. It is idempotent against re-runs.
	ApplyPaymentOutcome(ctx context.Context, orderID string, outcome models.VerificationOutcome) error
}
