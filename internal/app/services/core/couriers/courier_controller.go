package couriers

import (
	"context"
	"net/http"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/app/contracts"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/exceptions"
	"farmalink-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type CourierController struct {
	Log              *zap.Logger
	CourierScheduler contracts.CourierScheduler
	InternalConfig   *config.InternalConfig
}

func NewCourierController(logger *zap.Logger, courierScheduler contracts.CourierScheduler, internalConfig *config.InternalConfig) *CourierController {
	return &CourierController{
		Log:              logger,
		CourierScheduler: courierScheduler,
		InternalConfig:   internalConfig,
	}
}

func (ctrl *CourierController) FindEligible(w http.ResponseWriter, r *http.Request) {
	timeout := time.Duration(ctrl.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result, err := ctrl.CourierScheduler.FindEligible(ctx)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListCouriersSuccessMessage, result)
}
