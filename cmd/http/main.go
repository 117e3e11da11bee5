package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/delivery/http/routers"
	"farmalink-service/internal/app/drivers/database"
	"farmalink-service/internal/app/drivers/logger"
	"farmalink-service/internal/app/drivers/messaging"
	"farmalink-service/internal/app/services/core/couriers"
	"farmalink-service/internal/app/services/core/orders"
	"farmalink-service/internal/app/services/core/prescriptions"
	"farmalink-service/internal/app/services/core/transactions"
	"farmalink-service/internal/app/services/shared/notifications"
	"farmalink-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Error while closing app dependencies: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)

	// Notifications
	notificationService, err := notifications.NewNotificationService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.RabbitMQ.NotificationQueue,
	)
	if err != nil {
		logrus.Fatalf("Error while initializing notification service: %v", err)
	}

	// Middlewares
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Courier
	courierMongoRepository := couriers.NewCourierMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	// Order
	orderMongoRepository := orders.NewOrderMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	courierScheduler := couriers.NewCourierScheduler(
		courierMongoRepository,
		orderMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	courierController := couriers.NewCourierController(bootstrap.Logger, courierScheduler, bootstrap.InternalConfig)

	orderUsecase := orders.NewOrderUsecase(
		orderMongoRepository,
		courierScheduler,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	orderController := orders.NewOrderController(bootstrap.Logger, orderUsecase, bootstrap.InternalConfig)

	// Prescription
	prescriptionMongoRepository := prescriptions.NewPrescriptionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(
		prescriptionMongoRepository,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	prescriptionController := prescriptions.NewPrescriptionController(bootstrap.Logger, prescriptionUsecase, bootstrap.InternalConfig)

	// Transaction
	transactionMongoRepository := transactions.NewTransactionMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	transactionUsecase := transactions.NewTransactionUsecase(
		transactionMongoRepository,
		orderUsecase,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	transactionController := transactions.NewTransactionController(bootstrap.Logger, transactionUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		orderController,
		prescriptionController,
		transactionController,
		courierController,
	)
}
