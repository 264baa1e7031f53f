package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/errors"
	"go-events-api/core/middleware"
	"go-events-api/modules/event/dto"
	"go-events-api/modules/event/service"
)

type EventController struct {
	controller.BaseController
	service *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *EventController) List(c echo.Context) error {
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

func (ctrl *EventController) Create(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	resp, err := ctrl.service.Create(c.Request().Context(), email, &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "event created")
}

func (ctrl *EventController) Get(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	resp, err := ctrl.service.Get(c.Request().Context(), email, c.Param("eventId"))
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "ok")
}

func (ctrl *EventController) Update(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	resp, err := ctrl.service.Update(c.Request().Context(), email, c.Param("eventId"), &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "event updated")
}
