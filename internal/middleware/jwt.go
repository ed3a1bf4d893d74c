package middleware

import (
	"fmt"
	"net/http"

	"pettouch/internal/caching"
	"pettouch/internal/common"
	"pettouch/internal/services"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration for protected routes. On
// success the authenticated user id is placed in the request context.
func JWTConfig(authSvc services.AuthService, cacheSvc caching.CacheService) echojwt.Config {
	return echojwt.Config{
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			ctx := c.Request().Context()

			claims, err := authSvc.ValidateToken(ctx, auth)
			if err != nil {
				return nil, err
			}

			// A jti present in the blocklist was revoked by logout
			if _, err := cacheSvc.GetString(ctx, fmt.Sprintf("revoked_token:%s", claims.TokenID)); err == nil {
				return nil, fmt.Errorf("token revoked")
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return nil, fmt.Errorf("invalid user_id in token")
			}

			c.SetRequest(c.Request().WithContext(common.WithUserID(ctx, userID)))
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// OptionalJWTConfig is the same token handling for routes that serve both
// anonymous and signed-in callers. A missing or bad token leaves the
// request anonymous instead of rejecting it; a good one still puts the
// user id into the request context.
func OptionalJWTConfig(authSvc services.AuthService, cacheSvc caching.CacheService) echojwt.Config {
	cfg := JWTConfig(authSvc, cacheSvc)
	cfg.ContinueOnIgnoredError = true
	cfg.ErrorHandler = func(c echo.Context, err error) error {
		return nil
	}
	return cfg
}
