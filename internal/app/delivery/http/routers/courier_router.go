package routers

import (
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/services/core/couriers"

	"github.com/go-chi/chi/v5"
)

func attachCourierRoutes(router chi.Router, middlewares *middlewares.Middlewares, courierController *couriers.CourierController) {
	router.Get("/", courierController.FindEligible)
}
