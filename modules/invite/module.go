package invite

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/core/records"
	"go-events-api/modules/invite/controller"
	"go-events-api/modules/invite/repository"
	"go-events-api/modules/invite/router"
)

// Init wires the invite module and returns its repository for the reminder
// module.
func Init(g *echo.Group, store records.Store, mw *middleware.Middleware) *repository.InviteRepository {
	repo := repository.NewInviteRepository(store)
	ctrl := controller.NewInviteController(repo)
	r := router.NewInviteRouter(ctrl)

	r.Register(g, mw)

	return repo
}
