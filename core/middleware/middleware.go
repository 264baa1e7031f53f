package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"go-events-api/core/constants"
	"go-events-api/core/controller"
	"go-events-api/core/errors"
	"go-events-api/core/logger"
	"go-events-api/core/utils"
)

type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// AuthMiddleware validates the Bearer session token and stores the caller's
// email on the request context. Ownership checks downstream key off this
// value.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(constants.AuthHeaderName)
			if header == "" || !strings.HasPrefix(header, constants.AuthHeaderPrefix) {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "missing authorization header")
			}

			token := strings.TrimPrefix(header, constants.AuthHeaderPrefix)
			data, err := utils.ValidateAndParseToken(token)
			if err != nil {
				logger.Warn("Middleware:Auth:InvalidToken", "error", err)
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "invalid or expired token")
			}

			c.Set(constants.AuthContextKey, data.Email)
			return next(c)
		}
	}
}

// RequestID tags each request with an id for log correlation.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(constants.RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(constants.RequestIDHeader, id)
			c.Set("requestID", id)
			return next(c)
		}
	}
}

// UserEmail reads the authenticated caller's email from the request context.
func UserEmail(c echo.Context) (string, error) {
	email, _ := c.Get(constants.AuthContextKey).(string)
	if email == "" {
		return "", errors.NewAppError(errors.ErrUnauthorized, "not authenticated", nil)
	}
	return email, nil
}
