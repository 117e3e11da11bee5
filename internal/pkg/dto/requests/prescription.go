package requests

type PrescriptionItem struct {
	Medication string `json:"medication" validate:"required"`
	Dosage     string `json:"dosage" validate:"required"`
	Frequency  string `json:"frequency" validate:"required"`
	Duration   string `json:"duration"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// IssuePrescription creates a prescription in issued state. DoctorID may only
// be empty for patient-uploaded external prescriptions.
type IssuePrescription struct {
	PatientID   string             `json:"patientId" validate:"required"`
	PatientName string             `json:"patientName" validate:"required"`
	DoctorID    string             `json:"doctorId" validate:"required_unless=IsExternal true"`
	DoctorName  string             `json:"doctorName"`
	IsExternal  bool               `json:"isExternal"`
	Items       []PrescriptionItem `json:"items" validate:"required,min=1,dive"`
	Notes       string             `json:"notes"`
}

type LockPrescription struct {
	PrescriptionID string `json:"-"`
	PharmacyID     string `json:"pharmacyId" validate:"required"`
	PharmacyName   string `json:"pharmacyName" validate:"required"`
}

type DispensePrescription struct {
	PrescriptionID string `json:"-"`
	PharmacyID     string `json:"pharmacyId" validate:"required"`
}

// CancelPrescription aborts an issued or locked prescription. CallerRole is
// asserted by the owning application; this service only checks that patient
// and doctor callers match the record.
type CancelPrescription struct {
	PrescriptionID string `json:"-"`
	CallerID       string `json:"callerId" validate:"required"`
	CallerRole     string `json:"callerRole" validate:"required,oneof=patient doctor admin"`
	Reason         string `json:"reason" validate:"required"`
}
