package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/event/controller"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	events := g.Group("/events")
	events.Use(mw.AuthMiddleware())

	events.GET("", r.controller.List)
	events.POST("", r.controller.Create)
	events.GET("/:eventId", r.controller.Get)
	events.PATCH("/:eventId", r.controller.Update)
}
