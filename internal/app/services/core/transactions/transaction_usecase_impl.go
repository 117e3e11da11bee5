package transactions

import (
	"context"
	"sync"

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

// transactionUsecase is the payment verification gate. A human principal
// decides the outcome; the gate enforces that the decision lands exactly
// once and that the dependent effect for the transaction's item type runs
// idempotently.
type transactionUsecase struct {
	TransactionRepository contracts.TransactionRepository
	OrderUsecase          contracts.OrderUsecase
	NotificationService   contracts.NotificationService
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

var (
	transactionUsecaseInstance contracts.TransactionUsecase
	onceTransactionUsecase     sync.Once
)

func NewTransactionUsecase(
	transactionRepository contracts.TransactionRepository,
	orderUsecase contracts.OrderUsecase,
	notificationService contracts.NotificationService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.TransactionUsecase {
	onceTransactionUsecase.Do(func() {
		instance := &transactionUsecase{
			TransactionRepository: transactionRepository,
			OrderUsecase:          orderUsecase,
			NotificationService:   notificationService,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
		transactionUsecaseInstance = instance
	})
	return transactionUsecaseInstance
}

func (uc *transactionUsecase) FindTransactionByID(ctx context.Context, transactionID string) (*responses.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.FindTransactionByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, transactionID),
	)

	transaction, err := uc.TransactionRepository.FindByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	return &responses.Transaction{Transaction: *transaction}, nil
}

func (uc *transactionUsecase) VerifyTransaction(ctx context.Context, request *requests.VerifyTransaction) (*responses.Transaction, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("transactionUsecase.VerifyTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, request.TransactionID),
		zap.String(constvars.LoggingStatusKey, request.Outcome),
	)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	outcome := models.VerificationOutcome(request.Outcome)
	terminalStatus, err := terminalStatusFor(outcome)
	if err != nil {
		return nil, err
	}

	current, err := uc.TransactionRepository.FindByID(ctx, request.TransactionID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, exceptions.ErrTransactionNotFound(nil)
	}
	if current.Status.IsTerminal() && current.Status != terminalStatus {
		return nil, exceptions.ErrTransactionAlreadyTerminal(string(current.Status))
	}

	var result *models.Transaction
	verifyAndApply := func(ctx context.Context) error {
		verified, err := uc.TransactionRepository.Verify(ctx, request.TransactionID, terminalStatus, request.VerifierID)
		if err != nil {
			return err
		}
		if verified == nil {
			// Already terminal. Same outcome means this is a re-run, so fall
			// through and make sure the effect has been applied; a different
			// outcome was rejected above.
			verified, err = uc.TransactionRepository.FindByID(ctx, request.TransactionID)
			if err != nil {
				return err
			}
			if verified == nil {
				return exceptions.ErrTransactionNotFound(nil)
			}
			if verified.Status != terminalStatus {
				return exceptions.ErrTransactionAlreadyTerminal(string(verified.Status))
			}
		}

		applied, err := uc.applyEffect(ctx, verified, outcome)
		if err != nil {
			return err
		}
		result = applied
		return nil
	}

	if uc.InternalConfig.Fulfillment.MongoTransactionsEnabled {
		err = uc.TransactionRepository.WithTransaction(ctx, verifyAndApply)
	} else {
		err = verifyAndApply(ctx)
	}
	if err != nil {
		uc.Log.Error("transactionUsecase.VerifyTransaction error verifying transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, request.TransactionID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.notify(ctx, result, outcome)

	uc.Log.Info("transactionUsecase.VerifyTransaction completed successfully",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, result.ID),
		zap.String(constvars.LoggingStatusKey, string(result.Status)),
	)
	return &responses.Transaction{Transaction: *result}, nil
}

// applyEffect runs the dependent effect for the transaction's item type.
// Order payments propagate both outcomes into the order workflow, which is
// itself a conditional write and therefore a no-op on re-runs. The remaining
// item types emit their grant event at most once, gated by the effectApplied
// flag.
func (uc *transactionUsecase) applyEffect(ctx context.Context, transaction *models.Transaction, outcome models.VerificationOutcome) (*models.Transaction, error) {
	switch transaction.ItemType {
	case models.ItemTypeOrder:
		err := uc.OrderUsecase.ApplyPaymentOutcome(ctx, transaction.ResourceID, outcome)
		if err != nil {
			return nil, err
		}
	case models.ItemTypeConsultation, models.ItemTypeArticle, models.ItemTypeSubscription:
		// Grants only follow a verified payment; a rejection has no
		// dependent effect.
		if outcome != models.OutcomePaid {
			break
		}
	default:
		return nil, exceptions.ErrInvalidTransactionItemType(string(transaction.ItemType))
	}

	marked, err := uc.TransactionRepository.MarkEffectApplied(ctx, transaction.ID)
	if err != nil {
		return nil, err
	}
	if marked == nil {
		// Effect already recorded by an earlier run.
		return transaction, nil
	}

	if transaction.ItemType != models.ItemTypeOrder && outcome == models.OutcomePaid {
		uc.emitGrant(ctx, marked)
	}
	return marked, nil
}

// emitGrant publishes the activation event consumed by the article-access,
// consultation, and subscription collaborators. It runs at most once per
// transaction because the caller holds the effectApplied flip.
func (uc *transactionUsecase) emitGrant(ctx context.Context, transaction *models.Transaction) {
	err := uc.NotificationService.Notify(ctx, &requests.Notification{
		UserID: transaction.PayerID,
		Kind:   requests.NotificationPaymentVerified,
		Payload: map[string]interface{}{
			"transactionId": transaction.ID,
			"itemType":      transaction.ItemType,
			"resourceId":    transaction.ResourceID,
		},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("transactionUsecase failed to publish grant event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.Error(err),
		)
	}
}

func (uc *transactionUsecase) notify(ctx context.Context, transaction *models.Transaction, outcome models.VerificationOutcome) {
	kind := requests.NotificationPaymentVerified
	if outcome == models.OutcomeRejected {
		kind = requests.NotificationPaymentRejected
	}
	err := uc.NotificationService.Notify(ctx, &requests.Notification{
		UserID: transaction.PayerID,
		Kind:   kind,
		Payload: map[string]interface{}{
			"transactionId": transaction.ID,
			"status":        transaction.Status,
		},
	})
	if err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("transactionUsecase failed to publish notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, transaction.ID),
			zap.Error(err),
		)
	}
}

func terminalStatusFor(outcome models.VerificationOutcome) (models.TransactionStatus, error) {
	switch outcome {
	case models.OutcomePaid:
		return models.TransactionVerified, nil
	case models.OutcomeRejected:
		return models.TransactionRejected, nil
	default:
		return "", exceptions.ErrInvalidVerificationOutcome(string(outcome))
	}
}
