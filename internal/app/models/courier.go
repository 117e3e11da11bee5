package models

import "time"

type CourierStatus string

const (
	CourierAvailable CourierStatus = "Available"
	CourierBusy      CourierStatus = "Busy"
	CourierOffline   CourierStatus = "Offline"
)

type Courier struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	VehicleType string        `json:"vehicleType" bson:"vehicleType"`
	Status      CourierStatus `json:"status" bson:"status"`
	Location    string        `json:"location,omitempty" bson:"location,omitempty"`
	Rating      float64       `json:"rating" bson:"rating"`
	UpdatedAt   time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// Eligible reports whether the courier may receive a new assignment. Busy
// couriers stay visible in listings but are never selectable.
func (c *Courier) Eligible() bool {
	return c.Status == CourierAvailable
}
