package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrescriptionStatusIsTerminal(t *testing.T) {
	assert.True(t, PrescriptionDispensed.IsTerminal())
	assert.True(t, PrescriptionExpired.IsTerminal())
	assert.True(t, PrescriptionCancelled.IsTerminal())
	assert.False(t, PrescriptionIssued.IsTerminal())
	assert.False(t, PrescriptionLocked.IsTerminal())
}

func TestPrescriptionStatusIsCancellable(t *testing.T) {
	assert.True(t, PrescriptionIssued.IsCancellable())
	assert.True(t, PrescriptionLocked.IsCancellable())
	assert.False(t, PrescriptionDispensed.IsCancellable())
	assert.False(t, PrescriptionExpired.IsCancellable())
	assert.False(t, PrescriptionCancelled.IsCancellable())
}

func TestPrescriptionIsExpiredAt(t *testing.T) {
	now := time.Now()

	t.Run("past expiry on non-terminal status", func(t *testing.T) {
		prescription := &Prescription{Status: PrescriptionIssued, ExpiresAt: now.Add(-time.Hour)}
		assert.True(t, prescription.IsExpiredAt(now))

		prescription.Status = PrescriptionLocked
		assert.True(t, prescription.IsExpiredAt(now))
	})

	t.Run("future expiry", func(t *testing.T) {
		prescription := &Prescription{Status: PrescriptionIssued, ExpiresAt: now.Add(time.Hour)}
		assert.False(t, prescription.IsExpiredAt(now))
	})

	t.Run("terminal status never re-expires", func(t *testing.T) {
		prescription := &Prescription{Status: PrescriptionDispensed, ExpiresAt: now.Add(-time.Hour)}
		assert.False(t, prescription.IsExpiredAt(now))

		prescription.Status = PrescriptionCancelled
		assert.False(t, prescription.IsExpiredAt(now))
	})

	t.Run("zero expiry means no expiry", func(t *testing.T) {
		prescription := &Prescription{Status: PrescriptionIssued}
		assert.False(t, prescription.IsExpiredAt(now))
	})
}
