package user

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/conferencing"
	"go-events-api/core/middleware"
	"go-events-api/core/records"
	"go-events-api/modules/user/controller"
	"go-events-api/modules/user/repository"
	"go-events-api/modules/user/router"
	"go-events-api/modules/user/service"
)

// Init wires the user module and returns the service for use by other
// modules.
func Init(g *echo.Group, store records.Store, mw *middleware.Middleware, confClient *conferencing.Client) *service.UserService {
	repo := repository.NewUserRepository(store)
	svc := service.NewUserService(repo, confClient)
	ctrl := controller.NewUserController(svc)
	r := router.NewUserRouter(ctrl)

	r.Register(g, mw)

	return svc
}
