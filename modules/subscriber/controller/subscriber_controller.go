package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/errors"
	"go-events-api/core/middleware"
	"go-events-api/modules/subscriber/dto"
	"go-events-api/modules/subscriber/service"
)

type SubscriberController struct {
	controller.BaseController
	service *service.SubscriberService
}

func NewSubscriberController(svc *service.SubscriberService) *SubscriberController {
	return &SubscriberController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *SubscriberController) BulkUpsert(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	var req dto.BulkUpsertRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "expected { subscribers: [...] }")
	}
	resp, err := ctrl.service.BulkUpsert(c.Request().Context(), email, &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "subscribers synced")
}

func (ctrl *SubscriberController) ListMine(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	resp, err := ctrl.service.ListMine(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}

func (ctrl *SubscriberController) ListByEvent(c echo.Context) error {
	if _, err := middleware.UserEmail(c); err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	resp, err := ctrl.service.ListByEvent(c.Request().Context(), c.Param("eventId"))
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}
