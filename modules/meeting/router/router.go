package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/meeting/controller"
)

type MeetingRouter struct {
	controller *controller.MeetingController
}

func NewMeetingRouter(controller *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{controller: controller}
}

func (r *MeetingRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	meetings := g.Group("/meetings")
	meetings.Use(mw.AuthMiddleware())

	meetings.POST("", r.controller.Create)
	meetings.GET("", r.controller.List)
}
