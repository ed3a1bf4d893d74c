package middleware

import (
	"net/http"

	"pettouch/internal/common"
	"pettouch/internal/services"

	"github.com/labstack/echo/v4"
)

type AdminMiddleware struct {
	sessionSvc services.SessionService
}

func NewAdminMiddleware(sessionSvc services.SessionService) *AdminMiddleware {
	return &AdminMiddleware{
		sessionSvc: sessionSvc,
	}
}

// RequireAdmin allows only sessions whose profile role is admin. The role
// comes from the stored profile, which is the single authoritative source.
func (m *AdminMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			session, err := m.sessionSvc.Resolve(ctx, userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error checking permissions")
			}
			if !session.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}

			return next(c)
		}
	}
}
