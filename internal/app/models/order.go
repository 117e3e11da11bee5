package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentRejected   PaymentStatus = "rejected"
)

// orderTransitions is the only place order status legality is encoded.
// Cancel legality is handled by IsCancellable, not this table, because
// cancel diverts from the forward path.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderPending:    OrderProcessing,
	OrderProcessing: OrderDispatched,
	OrderDispatched: OrderDelivered,
}

func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	if next == OrderCancelled {
		return s.IsCancellable()
	}
	return orderTransitions[s] == next
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// IsCancellable reports whether explicit cancel is legal. A dispatched order
// must be resolved as delivered or handled as an exception, never cancelled.
func (s OrderStatus) IsCancellable() bool {
	return s == OrderPending || s == OrderProcessing
}

type OrderItem struct {
	ItemID   string  `json:"itemId" bson:"itemId"`
	Name     string  `json:"name" bson:"name"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type Order struct {
	ID              string        `json:"id" bson:"_id,omitempty"`
	PatientID       string        `json:"patientId" bson:"patientId"`
	PatientName     string        `json:"patientName" bson:"patientName"`
	PharmacyID      string        `json:"pharmacyId" bson:"pharmacyId"`
	PharmacyName    string        `json:"pharmacyName" bson:"pharmacyName"`
	PharmacyBranch  string        `json:"pharmacyBranch,omitempty" bson:"pharmacyBranch,omitempty"`
	Items           []OrderItem   `json:"items" bson:"items"`
	Total           float64       `json:"total" bson:"total"`
	DeliveryAddress string        `json:"deliveryAddress" bson:"deliveryAddress"`
	PaymentMethod   string        `json:"paymentMethod" bson:"paymentMethod"`
	TransactionRef  string        `json:"transactionRef,omitempty" bson:"transactionRef,omitempty"`
	Status          OrderStatus   `json:"status" bson:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus" bson:"paymentStatus"`
	CourierID       string        `json:"courierId,omitempty" bson:"courierId,omitempty"`
	CourierName     string        `json:"courierName,omitempty" bson:"courierName,omitempty"`
	CancelReason    string        `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	PlacedAt        time.Time     `json:"placedAt" bson:"placedAt"`
	ProcessingAt    *time.Time    `json:"processingAt,omitempty" bson:"processingAt,omitempty"`
	DispatchedAt    *time.Time    `json:"dispatchedAt,omitempty" bson:"dispatchedAt,omitempty"`
	DeliveredAt     *time.Time    `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CancelledAt     *time.Time    `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// ComputeTotal returns the sum of quantity times price over the items. The
// stored total is written once at creation and never recomputed afterwards.
func ComputeTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
