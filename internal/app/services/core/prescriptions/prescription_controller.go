package prescriptions

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/dto/requests"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PrescriptionController struct {
	Log                 *zap.Logger
	PrescriptionUsecase contracts.PrescriptionUsecase
	InternalConfig      *config.InternalConfig
}

func NewPrescriptionController(logger *zap.Logger, prescriptionUsecase contracts.PrescriptionUsecase, internalConfig *config.InternalConfig) *PrescriptionController {
	return &PrescriptionController{
		Log:                 logger,
		PrescriptionUsecase: prescriptionUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *PrescriptionController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *PrescriptionController) IssuePrescription(w http.ResponseWriter, r *http.Request) {
	request := new(requests.IssuePrescription)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.IssuePrescription(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.IssuePrescriptionSuccessMessage, result)
}

func (ctrl *PrescriptionController) FindPrescriptionByID(w http.ResponseWriter, r *http.Request) {
	prescriptionID := chi.URLParam(r, "prescriptionID")
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "prescriptionID"))
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.FindPrescriptionByID(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPrescriptionSuccessMessage, result)
}

func (ctrl *PrescriptionController) VerifyByLookupCode(w http.ResponseWriter, r *http.Request) {
	lookupCode := chi.URLParam(r, "lookupCode")
	if lookupCode == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "lookupCode"))
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.VerifyByLookupCode(ctx, lookupCode)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPrescriptionSuccessMessage, result)
}

func (ctrl *PrescriptionController) LockPrescription(w http.ResponseWriter, r *http.Request) {
	prescriptionID := chi.URLParam(r, "prescriptionID")
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "prescriptionID"))
		return
	}

	request := new(requests.LockPrescription)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PrescriptionID = prescriptionID

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.LockPrescription(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LockPrescriptionSuccessMessage, result)
}

func (ctrl *PrescriptionController) DispensePrescription(w http.ResponseWriter, r *http.Request) {
	prescriptionID := chi.URLParam(r, "prescriptionID")
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "prescriptionID"))
		return
	}

	request := new(requests.DispensePrescription)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PrescriptionID = prescriptionID

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.DispensePrescription(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DispensePrescriptionSuccessMessage, result)
}

func (ctrl *PrescriptionController) CancelPrescription(w http.ResponseWriter, r *http.Request) {
	prescriptionID := chi.URLParam(r, "prescriptionID")
	if prescriptionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "prescriptionID"))
		return
	}

	request := new(requests.CancelPrescription)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PrescriptionID = prescriptionID

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.PrescriptionUsecase.CancelPrescription(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelPrescriptionSuccessMessage, result)
}
