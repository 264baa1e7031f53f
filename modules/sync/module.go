package sync

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/lock"
	"go-events-api/core/middleware"
	"go-events-api/modules/sync/controller"
	"go-events-api/modules/sync/router"
	"go-events-api/modules/sync/service"
	userRepo "go-events-api/modules/user/repository"
)

// Init wires the sync module and returns its service for the worker.
func Init(g *echo.Group, mw *middleware.Middleware, events service.EventSource, subscribers service.SubscriberSink, users userRepo.UserRepositoryInterface, provider service.PaymentsProvider, locker lock.Locker) *service.SyncService {
	svc := service.NewSyncService(events, subscribers, users, provider, locker)
	ctrl := controller.NewSyncController(svc)
	r := router.NewSyncRouter(ctrl)

	r.Register(g, mw)

	return svc
}
