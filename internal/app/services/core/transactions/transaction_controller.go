package transactions

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

type TransactionController struct {
	Log                *zap.Logger
	TransactionUsecase contracts.TransactionUsecase
	InternalConfig     *config.InternalConfig
}

func NewTransactionController(logger *zap.Logger, transactionUsecase contracts.TransactionUsecase, internalConfig *config.InternalConfig) *TransactionController {
	return &TransactionController{
		Log:                logger,
		TransactionUsecase: transactionUsecase,
		InternalConfig:     internalConfig,
	}
}

func (ctrl *TransactionController) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	return context.WithTimeout(r.Context(), timeout)
}

func (ctrl *TransactionController) FindTransactionByID(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "transactionID"))
		return
	}

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.TransactionUsecase.FindTransactionByID(ctx, transactionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetTransactionSuccessMessage, result)
}

func (ctrl *TransactionController) VerifyTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "transactionID"))
		return
	}

	request := new(requests.VerifyTransaction)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.TransactionID = transactionID

	ctx, cancel := ctrl.requestContext(r)
	defer cancel()

	result, err := ctrl.TransactionUsecase.VerifyTransaction(ctx, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.VerifyTransactionSuccessMessage, result)
}
