package responses

import "farmalink-service/internal/app/models"

type Order struct {
	models.Order
	DisplayCode string `json:"displayCode"`
}

type Prescription struct {
	models.Prescription
	DisplayCode string `json:"displayCode"`
}

type Transaction struct {
	models.Transaction
}

type CourierList struct {
	Couriers []models.Courier `json:"couriers"`
}
