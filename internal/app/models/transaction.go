package models

import "time"

type TransactionStatus string

const (
	TransactionPendingVerification TransactionStatus = "pending_verification"
	TransactionVerified            TransactionStatus = "verified"
	TransactionRejected            TransactionStatus = "rejected"
)

func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionVerified || s == TransactionRejected
}

type TransactionItemType string

const (
	ItemTypeOrder        TransactionItemType = "order"
	ItemTypeConsultation TransactionItemType = "consultation"
	ItemTypeArticle      TransactionItemType = "article"
	ItemTypeSubscription TransactionItemType = "subscription"
)

type VerificationOutcome string

const (
	OutcomePaid     VerificationOutcome = "paid"
	OutcomeRejected VerificationOutcome = "rejected"
)

type Transaction struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	PayerID     string              `json:"payerId" bson:"payerId"`
	RecipientID string              `json:"recipientId" bson:"recipientId"`
	Amount      float64             `json:"amount" bson:"amount"`
	Currency    string              `json:"currency" bson:"currency"`
	ItemType    TransactionItemType `json:"itemType" bson:"itemType"`
	ResourceID  string              `json:"resourceId" bson:"resourceId"`
	Status      TransactionStatus   `json:"status" bson:"status"`
	VerifierID  string              `json:"verifierId,omitempty" bson:"verifierId,omitempty"`
	// EffectApplied flips once the dependent effect for this transaction has
	// run, so re-running verification effects stays a no-op.
	EffectApplied bool       `json:"effectApplied" bson:"effectApplied"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}
