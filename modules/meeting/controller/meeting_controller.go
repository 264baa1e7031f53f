package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/errors"
	"go-events-api/core/middleware"
	"go-events-api/modules/meeting/dto"
	"go-events-api/modules/meeting/service"
)

type MeetingController struct {
	controller.BaseController
	service *service.MeetingService
}

func NewMeetingController(svc *service.MeetingService) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *MeetingController) Create(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	var req dto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid meeting payload")
	}
	resp, err := ctrl.service.Create(c.Request().Context(), email, &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "meeting created")
}

func (ctrl *MeetingController) List(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	resp, err := ctrl.service.List(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}
