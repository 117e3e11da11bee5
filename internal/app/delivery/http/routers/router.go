package routers

import (
	"fmt"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/services/core/couriers"
	"farmalink-service/internal/app/services/core/orders"
	"farmalink-service/internal/app/services/core/prescriptions"
	"farmalink-service/internal/app/services/core/transactions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	orderController *orders.OrderController,
	prescriptionController *prescriptions.PrescriptionController,
	transactionController *transactions.TransactionController,
	courierController *couriers.CourierController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/orders", func(r chi.Router) {
				attachOrderRoutes(r, middlewares, orderController)
			})

			r.Route("/prescriptions", func(r chi.Router) {
				attachPrescriptionRoutes(r, middlewares, prescriptionController)
			})

			r.Route("/transactions", func(r chi.Router) {
				attachTransactionRoutes(r, middlewares, transactionController)
			})

			r.Route("/couriers", func(r chi.Router) {
				attachCourierRoutes(r, middlewares, courierController)
			})
		})
	})
}
