package reminder

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/lock"
	"go-events-api/core/middleware"
	"go-events-api/modules/reminder/controller"
	"go-events-api/modules/reminder/router"
	"go-events-api/modules/reminder/service"
)

// Init wires the reminder module and returns its service for the worker.
func Init(g *echo.Group, mw *middleware.Middleware, events service.EventSource, subscribers service.SubscriberSource, invites service.InviteSink, locker lock.Locker) *service.ReminderService {
	svc := service.NewReminderService(events, subscribers, invites, locker)
	ctrl := controller.NewReminderController(svc)
	r := router.NewReminderRouter(ctrl)

	r.Register(g, mw)

	return svc
}
