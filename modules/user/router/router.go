package router

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/user/controller"
)

type UserRouter struct {
	controller *controller.UserController
}

func NewUserRouter(controller *controller.UserController) *UserRouter {
	return &UserRouter{controller: controller}
}

func (r *UserRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/signup", r.controller.Signup)
	g.POST("/login", r.controller.Login)

	users := g.Group("/users")
	users.Use(mw.AuthMiddleware())
	users.GET("/timezone", r.controller.GetTimeZone)
	users.PATCH("/timezone", r.controller.UpdateTimeZone)
}
