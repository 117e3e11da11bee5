package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	InternalConfig struct {
		App         App
		RabbitMQ    AppRabbitMQ
		Fulfillment Fulfillment
	}

	App struct {
		Env                     string
		Port                    string
		Version                 string
		Timezone                string
		EndpointPrefix          string
		MaxRequests             int
		ShutdownTimeout         int
		RequestTimeoutInSeconds int
	}

	AppRabbitMQ struct {
		NotificationQueue string
	}

	Fulfillment struct {
		PrescriptionExpiryInDays int
		CourierCacheTTLInSeconds int
		// MongoTransactionsEnabled wraps verify-plus-effect in a session
		// transaction. Requires a replica set; every effect is idempotent so
		// the sequential path is safe when disabled.
		MongoTransactionsEnabled bool
	}
)
