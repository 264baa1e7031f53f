package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/reminder/controller"
)

type ReminderRouter struct {
	controller *controller.ReminderController
}

func NewReminderRouter(controller *controller.ReminderController) *ReminderRouter {
	return &ReminderRouter{controller: controller}
}

func (r *ReminderRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/reminders/run", r.controller.Run, mw.AuthMiddleware())
}
