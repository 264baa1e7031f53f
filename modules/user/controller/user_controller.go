package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/errors"
	"go-events-api/core/middleware"
	"go-events-api/modules/user/dto"
	"go-events-api/modules/user/service"
)

type UserController struct {
	controller.BaseController
	service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

func (ctrl *UserController) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	resp, err := ctrl.service.Signup(c.Request().Context(), &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "signed up")
}

func (ctrl *UserController) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "invalid request body")
	}
	resp, err := ctrl.service.Login(c.Request().Context(), &req)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, resp, "logged in")
}

func (ctrl *UserController) GetTimeZone(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	zone, err := ctrl.service.GetTimeZone(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, dto.TimeZoneResponse{TimeZone: zone}, "ok")
}

func (ctrl *UserController) UpdateTimeZone(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	var req dto.UpdateTimeZoneRequest
	if err := c.Bind(&req); err != nil || req.TimeZone == "" {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "expected { timeZone: string }")
	}
	if err := ctrl.service.SetTimeZone(c.Request().Context(), email, req.TimeZone); err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	return ctrl.SuccessResponse(c, dto.TimeZoneResponse{TimeZone: req.TimeZone}, "time zone updated")
}
