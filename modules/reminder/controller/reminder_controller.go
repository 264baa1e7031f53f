package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/middleware"
	"go-events-api/modules/reminder/service"
)

type ReminderController struct {
	controller.BaseController
	service *service.ReminderService
}

func NewReminderController(svc *service.ReminderService) *ReminderController {
	return &ReminderController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Run triggers a reminder pass for the calling user.
func (ctrl *ReminderController) Run(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	result, err := ctrl.service.RunReminderJob(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, result, "reminder pass complete")
}
