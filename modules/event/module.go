package event

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/core/payments"
	"go-events-api/core/records"
	"go-events-api/modules/event/controller"
	"go-events-api/modules/event/repository"
	"go-events-api/modules/event/router"
	"go-events-api/modules/event/service"
	userRepo "go-events-api/modules/user/repository"
)

// Init wires the event module and returns its repository and service for use
// by the reminder and sync modules.
func Init(g *echo.Group, store records.Store, mw *middleware.Middleware, pay *payments.Client) (*repository.EventRepository, *service.EventService) {
	repo := repository.NewEventRepository(store)
	users := userRepo.NewUserRepository(store)
	svc := service.NewEventService(repo, users, pay)
	ctrl := controller.NewEventController(svc)
	r := router.NewEventRouter(ctrl)

	r.Register(g, mw)

	return repo, svc
}
