package models

import "time"

type PrescriptionStatus string

const (
	PrescriptionIssued    PrescriptionStatus = "issued"
	PrescriptionLocked    PrescriptionStatus = "locked_by_pharmacy"
	PrescriptionDispensed PrescriptionStatus = "dispensed"
	PrescriptionExpired   PrescriptionStatus = "expired"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

func (s PrescriptionStatus) IsTerminal() bool {
	switch s {
	case PrescriptionDispensed, PrescriptionExpired, PrescriptionCancelled:
		return true
	}
	return false
}

// IsCancellable reports whether an explicit cancel is legal. Expiry is not a
// cancel; it is applied lazily by readers against ExpiresAt.
func (s PrescriptionStatus) IsCancellable() bool {
	return s == PrescriptionIssued || s == PrescriptionLocked
}

type PrescriptionItem struct {
	Medication string `json:"medication" bson:"medication"`
	Dosage     string `json:"dosage" bson:"dosage"`
	Frequency  string `json:"frequency" bson:"frequency"`
	Duration   string `json:"duration" bson:"duration"`
	Quantity   int    `json:"quantity" bson:"quantity"`
}

type Prescription struct {
	ID           string             `json:"id" bson:"_id,omitempty"`
	LookupCode   string             `json:"lookupCode" bson:"lookupCode"`
	PatientID    string             `json:"patientId" bson:"patientId"`
	PatientName  string             `json:"patientName" bson:"patientName"`
	DoctorID     string             `json:"doctorId,omitempty" bson:"doctorId,omitempty"`
	DoctorName   string             `json:"doctorName,omitempty" bson:"doctorName,omitempty"`
	IsExternal   bool               `json:"isExternal" bson:"isExternal"`
	Items        []PrescriptionItem `json:"items" bson:"items"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status       PrescriptionStatus `json:"status" bson:"status"`
	PharmacyID   string             `json:"pharmacyId,omitempty" bson:"pharmacyId,omitempty"`
	PharmacyName string             `json:"pharmacyName,omitempty" bson:"pharmacyName,omitempty"`
	CancelReason string             `json:"cancelReason,omitempty" bson:"cancelReason,omitempty"`
	IssuedAt     time.Time          `json:"issuedAt" bson:"issuedAt"`
	ExpiresAt    time.Time          `json:"expiresAt" bson:"expiresAt"`
	LockedAt     *time.Time         `json:"lockedAt,omitempty" bson:"lockedAt,omitempty"`
	DispensedAt  *time.Time         `json:"dispensedAt,omitempty" bson:"dispensedAt,omitempty"`
	ExpiredAt    *time.Time         `json:"expiredAt,omitempty" bson:"expiredAt,omitempty"`
	CancelledAt  *time.Time         `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// IsExpiredAt reports whether the prescription should be treated as expired
// when read at the given time. The transition itself is still a conditional
// write performed by whichever caller observes this first.
func (p *Prescription) IsExpiredAt(now time.Time) bool {
	return !p.Status.IsTerminal() && !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
