package requests

type VerifyTransaction struct {
	TransactionID string `json:"-"`
	Outcome       string `json:"outcome" validate:"required,oneof=paid rejected"`
	VerifierID    string `json:"verifierId" validate:"required"`
}
