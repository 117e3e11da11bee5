package contracts

import (
	"context"
	"time"

	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
)

// PrescriptionRepository follows the same conditional-write contract as
// OrderRepository: transition methods match on the expected prior status and
// return (nil, nil) when the precondition no longer holds. Two pharmacies
// racing to lock the same prescription therefore resolve inside the store,
// not in application memory.
type PrescriptionRepository interface {
	CreatePrescription(ctx context.Context, prescription *models.Prescription) (string, error)
	FindByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	FindByLookupCode(ctx context.Context, lookupCode string) (*models.Prescription, error)

	// Lock moves status issued -> locked_by_pharmacy, first writer wins.
	Lock(ctx context.Context, prescriptionID, pharmacyID, pharmacyName string) (*models.Prescription, error)
	// Dispense moves locked_by_pharmacy -> dispensed, conditional on the
	// caller being the locking pharmacy.
	Dispense(ctx context.Context, prescriptionID, pharmacyID string) (*models.Prescription, error)
	// Cancel moves issued/locked_by_pharmacy -> cancelled.
	Cancel(ctx context.Context, prescriptionID, reason string) (*models.Prescription, error)
	// Expire moves any non-terminal status -> expired, conditional on
	// expiresAt being in the past at write time.
	Expire(ctx context.Context, prescriptionID string, now time.Time) (*models.Prescription, error)
}

type PrescriptionUsecase interface {
	IssuePrescription(ctx context.Context, request *requests.IssuePrescription) (*responses.Prescription, error)
	FindPrescriptionByID(ctx context.Context, prescriptionID string) (*responses.Prescription, error)
	VerifyByLookupCode(ctx context.Context, lookupCode string) (*responses.Prescription, error)
	LockPrescription(ctx context.Context, request *requests.LockPrescription) (*responses.Prescription, error)
	DispensePrescription(ctx context.Context, request *requests.DispensePrescription) (*responses.Prescription, error)
	CancelPrescription(ctx context.Context, request *requests.CancelPrescription) (*responses.Prescription, error)
}
