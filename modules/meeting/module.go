package meeting

import (
	"github.com/labstack/echo/v4"

	"go-events-api/core/middleware"
	"go-events-api/modules/meeting/controller"
	"go-events-api/modules/meeting/router"
	"go-events-api/modules/meeting/service"
)

// Init wires the meeting module.
func Init(g *echo.Group, mw *middleware.Middleware, creds service.CredentialSource, client service.Conferencer) *service.MeetingService {
	svc := service.NewMeetingService(creds, client)
	ctrl := controller.NewMeetingController(svc)
	r := router.NewMeetingRouter(ctrl)

	r.Register(g, mw)

	return svc
}
