package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/subscriber/controller"
)

type SubscriberRouter struct {
	controller *controller.SubscriberController
}

func NewSubscriberRouter(controller *controller.SubscriberController) *SubscriberRouter {
	return &SubscriberRouter{controller: controller}
}

func (r *SubscriberRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/subscribers", r.controller.BulkUpsert, mw.AuthMiddleware())
	g.GET("/my-subscribers", r.controller.ListMine, mw.AuthMiddleware())
	g.GET("/events/:eventId/subscribers", r.controller.ListByEvent, mw.AuthMiddleware())
}
