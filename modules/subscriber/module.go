package subscriber

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/core/records"
	"go-events-api/modules/subscriber/controller"
	"go-events-api/modules/subscriber/repository"
	"go-events-api/modules/subscriber/router"
	"go-events-api/modules/subscriber/service"
	userRepo "go-events-api/modules/user/repository"
)

// Init wires the subscriber module and returns its repository for the
// reminder and sync modules.
func Init(g *echo.Group, store records.Store, mw *middleware.Middleware) *repository.SubscriberRepository {
	repo := repository.NewSubscriberRepository(store)
	users := userRepo.NewUserRepository(store)
	svc := service.NewSubscriberService(repo, users)
	ctrl := controller.NewSubscriberController(svc)
	r := router.NewSubscriberRouter(ctrl)

	r.Register(g, mw)

	return repo
}
