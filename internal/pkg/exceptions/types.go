package exceptions

import (
	"fmt"

	"farmalink-service/internal/pkg/constvars"
)

var (
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidationFailed, paramName))
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
)

// MongoDB driver faults.
var (
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBInsertDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBFindDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBUpdateDocument)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMongoDBNotObjectID)
	}
	ErrMongoDBStartSession = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMongoDBStartSession)
	}
)

// Redis faults. The courier read-model cache is best effort, so callers log
// these and fall through to mongo.
var (
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSet)
	}
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGet)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, KindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDelete)
	}
)

// Not-found family.
var (
	ErrOrderNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientOrderNotFound, constvars.ErrDevOrderNotFound)
	}
	ErrPrescriptionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientPrescriptionNotFound, constvars.ErrDevPrescriptionNotFound)
	}
	ErrTransactionNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientTransactionNotFound, constvars.ErrDevTransactionNotFound)
	}
	ErrCourierNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, KindNotFound, constvars.StatusNotFound, constvars.ErrClientCourierNotFound, constvars.ErrDevCourierNotFound)
	}
)

// Order workflow state errors.
var (
	ErrOrderItemsEmpty = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientOrderItemsEmpty, constvars.ErrDevValidationFailed)
	}
	ErrOrderTotalNotPositive = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientOrderTotalNotPositive, constvars.ErrDevValidationFailed)
	}
	ErrDeliveryAddressMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientDeliveryAddressMissing, constvars.ErrDevValidationFailed)
	}
	ErrOrderIllegalTransition = func(from, to string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientOrderIllegalTransition, fmt.Sprintf(constvars.ErrDevOrderIllegalTransition, from, to))
	}
	ErrOrderPaymentNotProcessing = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientPaymentNotSubmitted, fmt.Sprintf(constvars.ErrDevOrderPaymentNotProcessing, current))
	}
	ErrOrderPaymentNotPaid = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindPrecondition, constvars.StatusConflict, constvars.ErrClientPaymentNotVerified, fmt.Sprintf(constvars.ErrDevOrderPaymentNotPaid, current))
	}
	ErrOrderStatusNotProcessing = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindPrecondition, constvars.StatusConflict, constvars.ErrClientOrderIllegalTransition, fmt.Sprintf(constvars.ErrDevOrderStatusNotProcessing, current))
	}
	ErrOrderStatusNotDispatched = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientOrderNotDispatched, fmt.Sprintf(constvars.ErrDevOrderStatusNotDispatched, current))
	}
	ErrOrderNotCancellable = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientOrderAlreadyDispatched, fmt.Sprintf(constvars.ErrDevOrderNotCancellable, current))
	}
)

// Prescription workflow state errors.
var (
	ErrPrescriptionItemsEmpty = func(err error) *CustomError {
		return BuildNewCustomError(err, KindValidation, constvars.StatusBadRequest, constvars.ErrClientPrescriptionItemsEmpty, constvars.ErrDevValidationFailed)
	}
	ErrPrescriptionAlreadyLocked = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientPrescriptionAlreadyLocked, fmt.Sprintf(constvars.ErrDevPrescriptionNotIssued, current))
	}
	ErrPrescriptionNotLocked = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientPrescriptionAlreadyDispensed, fmt.Sprintf(constvars.ErrDevPrescriptionNotLocked, current))
	}
	ErrPrescriptionLockedByOther = func(lockingPharmacy, caller string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusForbidden, constvars.ErrClientPrescriptionNotLockedByYou, fmt.Sprintf(constvars.ErrDevPrescriptionLockedByOther, lockingPharmacy, caller))
	}
	ErrPrescriptionTerminal = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientPrescriptionTerminal, fmt.Sprintf(constvars.ErrDevPrescriptionTerminal, current))
	}
	ErrPrescriptionCancelForbidden = func(callerID, callerRole string) *CustomError {
		return BuildNewCustomError(nil, KindPrecondition, constvars.StatusForbidden, constvars.ErrClientCancelNotAllowed, fmt.Sprintf(constvars.ErrDevPrescriptionCancelForbidden, callerID, callerRole))
	}
	ErrPrescriptionExpired = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusGone, constvars.ErrClientPrescriptionExpired, fmt.Sprintf(constvars.ErrDevPrescriptionTerminal, current))
	}
)

// Payment gate and courier scheduler errors.
var (
	ErrTransactionAlreadyTerminal = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindInvalidState, constvars.StatusConflict, constvars.ErrClientPaymentAlreadyVerified, fmt.Sprintf(constvars.ErrDevTransactionAlreadyTerminal, current))
	}
	ErrInvalidVerificationOutcome = func(outcome string) *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidVerificationOutcome, outcome))
	}
	ErrInvalidTransactionItemType = func(itemType string) *CustomError {
		return BuildNewCustomError(nil, KindValidation, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevInvalidTransactionItemType, itemType))
	}
	ErrCourierUnavailable = func(current string) *CustomError {
		return BuildNewCustomError(nil, KindPrecondition, constvars.StatusConflict, constvars.ErrClientCourierNotAvailable, fmt.Sprintf(constvars.ErrDevCourierUnavailable, current))
	}
	ErrCourierClaimed = func() *CustomError {
		return BuildNewCustomError(nil, KindConflict, constvars.StatusConflict, constvars.ErrClientCourierNotAvailable, constvars.ErrDevCourierClaimed)
	}
)
