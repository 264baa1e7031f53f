package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/middleware"
	"go-events-api/modules/sync/service"
)

type SyncController struct {
	controller.BaseController
	service *service.SyncService
}

func NewSyncController(svc *service.SyncService) *SyncController {
	return &SyncController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Run triggers a full reconciliation pass for the calling user.
func (ctrl *SyncController) Run(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	result, err := ctrl.service.RunSuperSync(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, result, "sync complete")
}
