package routers

import (
	"farmalink-service/internal/app/delivery/http/middlewares"
	"farmalink-service/internal/app/services/core/prescriptions"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, prescriptionController *prescriptions.PrescriptionController) {
	router.Post("/", prescriptionController.IssuePrescription)
	router.Get("/{prescriptionID}", prescriptionController.FindPrescriptionByID)
	router.Get("/code/{lookupCode}", prescriptionController.VerifyByLookupCode)
	router.Post("/{prescriptionID}/lock", prescriptionController.LockPrescription)
	router.Post("/{prescriptionID}/dispense", prescriptionController.DispensePrescription)
	router.Post("/{prescriptionID}/cancel", prescriptionController.CancelPrescription)
}
