package contracts

import (
	"context"

	"farmalink-service/internal/app/models"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/dto/responses"
)

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, transaction *models.Transaction) (string, error)
	FindByID(ctx context.Context, transactionID string) (*models.Transaction, error)

	// Verify moves status pending_verification -> verified/rejected in one
	// conditional write. (nil, nil) means the transaction was already terminal.
	Verify(ctx context.Context, transactionID string, status models.TransactionStatus, verifierID string) (*models.Transaction, error)
	// MarkEffectApplied flips effectApplied false -> true; (nil, nil) means the
	// effect already ran, so the caller treats its effect as a no-op.
	MarkEffectApplied(ctx context.Context, transactionID string) (*models.Transaction, error)

	// WithTransaction runs fn inside a multi-document session transaction when
	// the deployment supports one, and sequentially otherwise. Every effect
	// coupled with verification is individually idempotent, so the sequential
	// fallback stays safe.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactionUsecase is the payment verification gate. Verification is
// performed by a human principal; the gate only enforces single-shot
// transition plus the idempotent dependent effect per item type.
type TransactionUsecase interface {
	VerifyTransaction(ctx context.Context, request *requests.VerifyTransaction) (*responses.Transaction, error)
	FindTransactionByID(ctx context.Context, transactionID string) (*responses.Transaction, error)
}
