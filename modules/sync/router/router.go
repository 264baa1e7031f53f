package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/sync/controller"
)

type SyncRouter struct {
	controller *controller.SyncController
}

func NewSyncRouter(controller *controller.SyncController) *SyncRouter {
	return &SyncRouter{controller: controller}
}

func (r *SyncRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/sync/run", r.controller.Run, mw.AuthMiddleware())
}
