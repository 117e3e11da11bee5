package requests

// Notification is the fire-and-forget payload published to the dispatcher
// queue after a successful transition. The dispatcher owns delivery; a failed
// publish never rolls the transition back.
type Notification struct {
	UserID  string                 `json:"userId"`
	Kind    string                 `json:"kind"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

const (
	NotificationOrderCreated          = "order_created"
	NotificationOrderPaymentSubmitted = "order_payment_submitted"
	NotificationOrderPaid             = "order_paid"
	NotificationOrderDispatched       = "order_dispatched"
	NotificationOrderDelivered        = "order_delivered"
	NotificationOrderCancelled        = "order_cancelled"
	NotificationPrescriptionIssued    = "prescription_issued"
	NotificationPrescriptionLocked    = "prescription_locked"
	NotificationPrescriptionDispensed = "prescription_dispensed"
	NotificationPrescriptionCancelled = "prescription_cancelled"
	NotificationPaymentVerified       = "payment_verified"
	NotificationPaymentRejected       = "payment_rejected"
)
