package contracts

import (
	"context"

	"farmalink-service/internal/pkg/dto/requests"
)

// NotificationService publishes workflow-transition events to the dispatcher
// queue. Callers invoke it after the store has confirmed a transition, log
// any error and move on; a transition is never rolled back for a failed
// notification.
type NotificationService interface {
	Notify(ctx context.Context, notification *requests.Notification) error
}
