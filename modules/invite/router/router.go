package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/invite/controller"
)

type InviteRouter struct {
	controller *controller.InviteController
}

func NewInviteRouter(controller *controller.InviteController) *InviteRouter {
	return &InviteRouter{controller: controller}
}

func (r *InviteRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.GET("/invites/reminder", r.controller.ListReminders, mw.AuthMiddleware())
}
