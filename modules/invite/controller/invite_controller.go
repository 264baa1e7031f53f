package controller

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/controller"
	"go-events-api/core/middleware"
	"go-events-api/modules/invite/dto"
	"go-events-api/modules/invite/repository"
)

type InviteController struct {
	controller.BaseController
	repo *repository.InviteRepository
}

func NewInviteController(repo *repository.InviteRepository) *InviteController {
	return &InviteController{
		BaseController: controller.NewBaseController(),
		repo:           repo,
	}
}

func (ctrl *InviteController) ListReminders(c echo.Context) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	invites, err := ctrl.repo.ListForOwner(c.Request().Context(), email)
	if err != nil {
		return ctrl.ErrorResponse(c, err)
	}
	out := make([]dto.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, dto.InviteResponse{
			ID:       inv.RecordID,
			Email:    inv.Email,
			Status:   inv.Status,
			SentTime: inv.SentTime,
			Message:  inv.Message,
		})
	}
	return ctrl.SuccessResponse(c, &dto.InviteListResponse{Invites: out, Total: len(out)}, "ok")
}
