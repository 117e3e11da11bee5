package exceptions

import (
	"errors"
	"testing"

	"farmalink-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestBuildNewCustomError(t *testing.T) {
	cause := errors.New("connection reset")
	customErr := BuildNewCustomError(cause, KindInternal, constvars.StatusInternalServerError, "client message", "dev message")

	assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
	assert.False(t, customErr.Success)
	assert.Equal(t, "client message", customErr.ClientMessage)
	assert.Equal(t, "dev message: connection reset", customErr.DevMessage)
	assert.Equal(t, KindInternal, customErr.Kind)
	assert.Contains(t, customErr.Error(), "dev message: connection reset")
	assert.NotEmpty(t, customErr.Location.File)

	withoutCause := BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, "client message", "dev message")
	assert.Equal(t, "dev message", withoutCause.DevMessage)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrOrderNotFound(nil)))
	assert.Equal(t, KindInvalidState, KindOf(ErrPrescriptionAlreadyLocked("locked_by_pharmacy")))
	assert.Equal(t, KindConflict, KindOf(ErrCourierClaimed()))
	assert.Equal(t, KindPrecondition, KindOf(ErrOrderPaymentNotPaid("processing")))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(ErrTransactionAlreadyTerminal("verified"), KindInvalidState))
	assert.False(t, IsKind(ErrTransactionAlreadyTerminal("verified"), KindValidation))
}

func TestStateErrorMessages(t *testing.T) {
	err := ErrOrderStatusNotDispatched("pending")
	assert.Contains(t, err.DevMessage, "pending")
	assert.Equal(t, constvars.StatusConflict, err.StatusCode)

	lockErr := ErrPrescriptionLockedByOther("pharmacy-1", "pharmacy-2")
	assert.Contains(t, lockErr.DevMessage, "pharmacy-1")
	assert.Contains(t, lockErr.DevMessage, "pharmacy-2")
	assert.Equal(t, constvars.StatusForbidden, lockErr.StatusCode)
}
