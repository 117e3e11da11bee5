package prescriptions

import (
	"context"
	"sync"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type prescriptionUsecase struct {
	PrescriptionRepository contracts.PrescriptionRepository
	NotificationService    contracts.NotificationService
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	prescriptionUsecaseInstance contracts.PrescriptionUsecase
	oncePrescriptionUsecase     sync.Once
)

func NewPrescriptionUsecase(
	prescriptionRepository contracts.PrescriptionRepository,
	notificationService contracts.NotificationService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PrescriptionUsecase {
	oncePrescriptionUsecase.Do(func() {
		instance := &prescriptionUsecase{
			PrescriptionRepository: prescriptionRepository,
			NotificationService:    notificationService,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
		prescriptionUsecaseInstance = instance
	})
	return prescriptionUsecaseInstance
}

func (uc *prescriptionUsecase) IssuePrescription(ctx context.Context, request *requests.IssuePrescription) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.IssuePrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if len(request.Items) == 0 {
		return nil, exceptions.ErrPrescriptionItemsEmpty(nil)
	}

	now := time.Now()
	items := make([]models.PrescriptionItem, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, models.PrescriptionItem{
			Medication: item.Medication,
			Dosage:     item.Dosage,
			Frequency:  item.Frequency,
			Duration:   item.Duration,
			Quantity:   item.Quantity,
		})
	}

	prescription := &models.Prescription{
		LookupCode:  utils.GenerateLookupCode(),
		PatientID:   request.PatientID,
		PatientName: request.PatientName,
		DoctorID:    request.DoctorID,
		DoctorName:  request.DoctorName,
		IsExternal:  request.IsExternal,
		Items:       items,
		Notes:       request.Notes,
		Status:      models.PrescriptionIssued,
		IssuedAt:    now,
		ExpiresAt:   now.AddDate(0, 0, uc.InternalConfig.Fulfillment.PrescriptionExpiryInDays),
		UpdatedAt:   now,
	}

	prescriptionID, err := uc.PrescriptionRepository.CreatePrescription(ctx, prescription)
	if err != nil {
		uc.Log.Error("prescriptionUsecase.IssuePrescription error creating prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	prescription.ID = prescriptionID

	uc.notify(ctx, prescription.PatientID, requests.NotificationPrescriptionIssued, prescription)

	uc.Log.Info("prescriptionUsecase.IssuePrescription completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)
	return buildPrescriptionResponse(prescription), nil
}

func (uc *prescriptionUsecase) FindPrescriptionByID(ctx context.Context, prescriptionID string) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.FindPrescriptionByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)

	prescription, err := uc.findWithLazyExpiry(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	return buildPrescriptionResponse(prescription), nil
}

// VerifyByLookupCode resolves the code a pharmacy operator scans before
// locking. It is a pure read: expiry is reported through the returned
// expiresAt but never written here.
func (uc *prescriptionUsecase) VerifyByLookupCode(ctx context.Context, lookupCode string) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.VerifyByLookupCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	prescription, err := uc.PrescriptionRepository.FindByLookupCode(ctx, lookupCode)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrPrescriptionNotFound(nil)
	}
	return buildPrescriptionResponse(prescription), nil
}

func (uc *prescriptionUsecase) LockPrescription(ctx context.Context, request *requests.LockPrescription) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.LockPrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		zap.String(constvars.LoggingPharmacyIDKey, request.PharmacyID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.findWithLazyExpiry(ctx, request.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guardLockable(current); err != nil {
		return nil, err
	}

	locked, err := uc.PrescriptionRepository.Lock(ctx, request.PrescriptionID, request.PharmacyID, request.PharmacyName)
	if err != nil {
		uc.Log.Error("prescriptionUsecase.LockPrescription error locking prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if locked == nil {
		// The conditional write matched nothing: a concurrent caller changed
		// the status between our read and our write. Re-read and report what
		// actually happened.
		current, err = uc.findWithLazyExpiry(ctx, request.PrescriptionID)
		if err != nil {
			return nil, err
		}
		return nil, uc.guardLockable(current)
	}

	uc.notify(ctx, locked.PatientID, requests.NotificationPrescriptionLocked, locked)

	uc.Log.Info("prescriptionUsecase.LockPrescription completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, locked.ID),
		zap.String(constvars.LoggingPharmacyIDKey, request.PharmacyID),
	)
	return buildPrescriptionResponse(locked), nil
}

func (uc *prescriptionUsecase) DispensePrescription(ctx context.Context, request *requests.DispensePrescription) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.DispensePrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
		zap.String(constvars.LoggingPharmacyIDKey, request.PharmacyID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.findWithLazyExpiry(ctx, request.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if err := uc.guardDispensable(current, request.PharmacyID); err != nil {
		return nil, err
	}

	dispensed, err := uc.PrescriptionRepository.Dispense(ctx, request.PrescriptionID, request.PharmacyID)
	if err != nil {
		uc.Log.Error("prescriptionUsecase.DispensePrescription error dispensing prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if dispensed == nil {
		current, err = uc.findWithLazyExpiry(ctx, request.PrescriptionID)
		if err != nil {
			return nil, err
		}
		return nil, uc.guardDispensable(current, request.PharmacyID)
	}

	uc.notify(ctx, dispensed.PatientID, requests.NotificationPrescriptionDispensed, dispensed)

	uc.Log.Info("prescriptionUsecase.DispensePrescription completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, dispensed.ID),
	)
	return buildPrescriptionResponse(dispensed), nil
}

func (uc *prescriptionUsecase) CancelPrescription(ctx context.Context, request *requests.CancelPrescription) (*responses.Prescription, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("prescriptionUsecase.CancelPrescription called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, request.PrescriptionID),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	current, err := uc.findWithLazyExpiry(ctx, request.PrescriptionID)
	if err != nil {
		return nil, err
	}
	if !current.Status.IsCancellable() {
		return nil, exceptions.ErrPrescriptionTerminal(string(current.Status))
	}
	if err := guardCancelCaller(current, request.CallerID, request.CallerRole); err != nil {
		return nil, err
	}

	cancelled, err := uc.PrescriptionRepository.Cancel(ctx, request.PrescriptionID, request.Reason)
	if err != nil {
		uc.Log.Error("prescriptionUsecase.CancelPrescription error cancelling prescription",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if cancelled == nil {
		current, err = uc.findWithLazyExpiry(ctx, request.PrescriptionID)
		if err != nil {
			return nil, err
		}
		return nil, exceptions.ErrPrescriptionTerminal(string(current.Status))
	}

	uc.notify(ctx, cancelled.PatientID, requests.NotificationPrescriptionCancelled, cancelled)

	uc.Log.Info("prescriptionUsecase.CancelPrescription completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, cancelled.ID),
	)
	return buildPrescriptionResponse(cancelled), nil
}

// findWithLazyExpiry reads a prescription and, when its expiry window has
// passed and the status is still non-terminal, applies the expired transition
// before returning. There is no background scheduler; whichever caller reads
// the record first performs the write. Losing that race is fine, the re-read
// picks up whatever state won.
func (uc *prescriptionUsecase) findWithLazyExpiry(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	prescription, err := uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrPrescriptionNotFound(nil)
	}

	now := time.Now()
	if !prescription.IsExpiredAt(now) {
		return prescription, nil
	}

	expired, err := uc.PrescriptionRepository.Expire(ctx, prescriptionID, now)
	if err != nil {
		return nil, err
	}
	if expired != nil {
		return expired, nil
	}

	prescription, err = uc.PrescriptionRepository.FindByID(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, exceptions.ErrPrescriptionNotFound(nil)
	}
	return prescription, nil
}

func (uc *prescriptionUsecase) guardLockable(current *models.Prescription) error {
	switch current.Status {
	case models.PrescriptionIssued:
		return nil
	case models.PrescriptionLocked:
		return exceptions.ErrPrescriptionAlreadyLocked(string(current.Status))
	case models.PrescriptionExpired:
		return exceptions.ErrPrescriptionExpired(string(current.Status))
	default:
		return exceptions.ErrPrescriptionTerminal(string(current.Status))
	}
}

func (uc *prescriptionUsecase) guardDispensable(current *models.Prescription, pharmacyID string) error {
	switch current.Status {
	case models.PrescriptionLocked:
		if current.PharmacyID != pharmacyID {
			return exceptions.ErrPrescriptionLockedByOther(current.PharmacyID, pharmacyID)
		}
		return nil
	case models.PrescriptionExpired:
		return exceptions.ErrPrescriptionExpired(string(current.Status))
	default:
		// Covers issued (no lock held yet) and every terminal state,
		// including the already-dispensed case.
		return exceptions.ErrPrescriptionNotLocked(string(current.Status))
	}
}

func guardCancelCaller(current *models.Prescription, callerID, callerRole string) error {
	switch callerRole {
	case "admin":
		return nil
	case "doctor":
		if callerID == current.DoctorID {
			return nil
		}
	case "patient":
		if callerID == current.PatientID {
			return nil
		}
	}
	return exceptions.ErrPrescriptionCancelForbidden(callerID, callerRole)
}

func (uc *prescriptionUsecase) notify(ctx context.Context, userID, kind string, prescription *models.Prescription) {
	err := uc.NotificationService.Notify(ctx, &requests.Notification{
		UserID: userID,
		Kind:   kind,
		Payload: map[string]interface{}{
			"prescriptionId": prescription.ID,
			"status":         prescription.Status,
		},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("prescriptionUsecase failed to publish notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPrescriptionIDKey, prescription.ID),
			zap.String(constvars.LoggingNotificationKey, kind),
			zap.Error(err),
		)
	}
}

func buildPrescriptionResponse(prescription *models.Prescription) *responses.Prescription {
	return &responses.Prescription{
		Prescription: *prescription,
		DisplayCode:  utils.DisplayCode(prescription.ID),
	}
}
