package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/apexdrive/console/core/identity"
)

// internalMiddleware restricts a route to provider-side roles.
func internalMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, err := getContextIdentity(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context identity")
			}
			if ident.Role.Internal() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// adminMiddleware restricts a route to the given roles.
func adminMiddleware(roles ...identity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, err := getContextIdentity(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context identity")
			}
			for _, role := range roles {
				if ident.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}
