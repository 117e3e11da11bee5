package constvars

type ContextKey string

const (
	ResourceOrders        = "orders"
	ResourcePrescriptions = "prescriptions"
	ResourceTransactions  = "transactions"
	ResourceCouriers      = "couriers"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "FRMLNK_SVC_"
)

const (
	RedisKeyAvailableCouriers = "couriers:available"
)

const (
	MongoCollectionOrders        = "orders"
	MongoCollectionPrescriptions = "prescriptions"
	MongoCollectionTransactions  = "transactions"
	MongoCollectionCouriers      = "couriers"
)

// DisplayCodeLength is how many trailing characters of a record id make up
// the short code shown to patients and couriers.
const DisplayCodeLength = 8
