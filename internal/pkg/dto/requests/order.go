package requests

type OrderItem struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

type CreateOrder struct {
	PatientID       string      `json:"patientId" validate:"required"`
	PatientName     string      `json:"patientName" validate:"required"`
	PharmacyID      string      `json:"pharmacyId" validate:"required"`
	PharmacyName    string      `json:"pharmacyName" validate:"required"`
	PharmacyBranch  string      `json:"pharmacyBranch"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress string      `json:"deliveryAddress" validate:"required"`
	PaymentMethod   string      `json:"paymentMethod" validate:"required"`
}

type SubmitPayment struct {
	OrderID        string `json:"-"`
	TransactionRef string `json:"transactionRef" validate:"required"`
}

type AssignCourier struct {
	OrderID   string `json:"-"`
	CourierID string `json:"courierId" validate:"required"`
}

type CancelOrder struct {
	OrderID string `json:"-"`
	Reason  string `json:"reason" validate:"required"`
}
