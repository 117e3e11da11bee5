package routers

import (
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/services/core/transactions"

	"github.com/go-chi/chi/v5"
)

func attachTransactionRoutes(router chi.Router, middlewares *middlewares.Middlewares, transactionController *transactions.TransactionController) {
	router.Get("/{transactionID}", transactionController.FindTransactionByID)
	router.Post("/{transactionID}/verify", transactionController.VerifyTransaction)
}
