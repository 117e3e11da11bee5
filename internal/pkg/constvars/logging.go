package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingQueryKey          = "query"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingOrderIDKey        = "order_id"
	LoggingPrescriptionIDKey = "prescription_id"
	LoggingTransactionIDKey  = "transaction_id"
	LoggingCourierIDKey      = "courier_id"
	LoggingPharmacyIDKey     = "pharmacy_id"
	LoggingStatusKey         = "status"
	LoggingNotificationKey   = "notification"
)
