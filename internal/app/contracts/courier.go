package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/responses"
)

type CourierRepository interface {
	FindByID(ctx context.Context, courierID string) (*models.Courier, error)
	ListByStatus(ctx context.Context, status models.CourierStatus) ([]models.Courier, error)

	// ClaimAvailable moves Available -> Busy conditionally. The courier
	// document is the one record two competing order assignments share, so
	// this compare-and-set is what arbitrates a double assignment; (nil, nil)
	// means another assignment claimed the courier first.
	ClaimAvailable(ctx context.Context, courierID string) (*models.Courier, error)
	// Release returns a claimed courier to Available. Best effort, used when
	// the order-side write fails after a successful claim.
	Release(ctx context.Context, courierID string) error
}

// CourierScheduler selects eligible couriers and performs the assignment
// hand-off that moves an order to dispatched.
type CourierScheduler interface {
	FindEligible(ctx context.Context) (*responses.CourierList, error)
	Assign(ctx context.Context, orderID, courierID string) (*models.Order, error)
}
