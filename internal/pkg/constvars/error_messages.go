package constvars

// Client-facing messages. Kept short and actionable; the dev message carries
// the detail.
const (
	ErrClientCannotProcessRequest          = "We cannot process your request, please try again"
	ErrClientSomethingWrongWithApplication = "Something is wrong with the application, please contact the administrator"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"

	ErrClientOrderNotFound        = "Order not found"
	ErrClientPrescriptionNotFound = "Prescription not found"
	ErrClientTransactionNotFound  = "Transaction not found"
	ErrClientCourierNotFound      = "Courier not found"

	ErrClientOrderItemsEmpty        = "Order must contain at least one item"
	ErrClientOrderTotalNotPositive  = "Order total must be greater than zero"
	ErrClientDeliveryAddressMissing = "Delivery address is required"
	ErrClientPrescriptionItemsEmpty = "Prescription must contain at least one item"

	ErrClientPaymentNotVerified     = "Payment has not been verified yet"
	ErrClientPaymentAlreadyVerified = "This payment has already been verified"
	ErrClientPaymentNotSubmitted    = "Payment has not been submitted for this order"

	ErrClientOrderIllegalTransition   = "This order can no longer be updated that way"
	ErrClientOrderNotDispatched       = "Order has not been dispatched yet"
	ErrClientOrderAlreadyDispatched   = "A dispatched order cannot be cancelled"
	ErrClientPrescriptionAlreadyLocked    = "This prescription is already locked by another pharmacy"
	ErrClientPrescriptionNotLockedByYou   = "This prescription is not locked by your pharmacy"
	ErrClientPrescriptionAlreadyDispensed = "This prescription has already been dispensed"
	ErrClientPrescriptionTerminal         = "This prescription can no longer be changed"
	ErrClientPrescriptionExpired          = "This prescription has expired"

	ErrClientCourierNotAvailable = "The selected courier is no longer available, please pick another one"

	ErrClientCancelNotAllowed = "You are not allowed to cancel this prescription"
)

// Dev messages, logged with caller locations.
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevCannotParseJSON            = "cannot parse JSON request body"
	ErrDevURLParamIDValidationFailed = "URL param %s is missing or invalid"
	ErrDevCannotMarshalJSON          = "cannot marshal payload to JSON"
	ErrDevServerDeadlineExceeded     = "context deadline exceeded"

	ErrDevMongoDBInsertDocument     = "mongodb failed to insert document"
	ErrDevMongoDBFindDocument       = "mongodb failed to find document"
	ErrDevMongoDBUpdateDocument     = "mongodb failed to update document"
	ErrDevMongoDBConditionalUpdate  = "mongodb conditional update matched no document"
	ErrDevMongoDBNotObjectID        = "provided id is not a valid ObjectID"
	ErrDevMongoDBStartSession       = "mongodb failed to start session"

	ErrDevRedisSet     = "redis failed to set key"
	ErrDevRedisGet     = "redis failed to get key"
	ErrDevRedisDelete  = "redis failed to delete key"

	ErrDevOrderNotFound        = "order does not exist"
	ErrDevPrescriptionNotFound = "prescription does not exist"
	ErrDevTransactionNotFound  = "transaction does not exist"
	ErrDevCourierNotFound      = "courier does not exist"

	ErrDevOrderIllegalTransition      = "illegal order transition from %s to %s"
	ErrDevOrderPaymentNotPaid         = "order payment_status is %s, expected paid"
	ErrDevOrderPaymentNotProcessing   = "order payment_status is %s, expected processing"
	ErrDevOrderStatusNotProcessing    = "order status is %s, expected processing"
	ErrDevOrderStatusNotDispatched    = "order status is %s, expected dispatched"
	ErrDevOrderNotCancellable         = "order status is %s, cancel is only legal before dispatch"
	ErrDevPrescriptionNotIssued       = "prescription status is %s, expected issued"
	ErrDevPrescriptionNotLocked       = "prescription status is %s, expected locked_by_pharmacy"
	ErrDevPrescriptionLockedByOther   = "prescription is locked by pharmacy %s, caller is %s"
	ErrDevPrescriptionTerminal        = "prescription status %s is terminal"
	ErrDevPrescriptionCancelForbidden = "caller %s with role %s may not cancel this prescription"
	ErrDevTransactionAlreadyTerminal  = "transaction status is %s, verification is single-shot"
	ErrDevCourierUnavailable          = "courier status is %s, expected Available"
	ErrDevCourierClaimed              = "courier was claimed by a concurrent assignment"
	ErrDevInvalidVerificationOutcome  = "verification outcome %s is not recognized"
	ErrDevInvalidTransactionItemType  = "transaction item type %s is not recognized"
)
