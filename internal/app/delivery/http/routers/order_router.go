package routers

import (
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/services/core/orders"

	"github.com/go-chi/chi/v5"
)

func attachOrderRoutes(router chi.Router, middlewares *middlewares.Middlewares, orderController *orders.OrderController) {
	router.Post("/", orderController.CreateOrder)
	router.Get("/{orderID}", orderController.FindOrderByID)
	router.Post("/{orderID}/payment", orderController.SubmitPayment)
	router.Post("/{orderID}/courier", orderController.AssignCourier)
	router.Post("/{orderID}/delivered", orderController.MarkDelivered)
	router.Post("/{orderID}/cancel", orderController.CancelOrder)
}
