package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openhire/pagebuilder/internal/builder/models"
)

// ContextKeyIdentity is where the middleware stores the verified identity
// on the echo context.
const ContextKeyIdentity = "identity"

// Middleware validates bearer tokens and stores the caller's identity in
// the request context. Requests without a valid token are rejected; the
// authorization gate downstream decides whether the identity may touch the
// targeted company.
func Middleware(manager *JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}

			claims, err := manager.ParseToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			identity, err := IdentityFromClaims(claims)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextKeyIdentity, identity)
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity stored by Middleware, or nil
// when the request carried none.
func IdentityFromContext(c echo.Context) *models.Identity {
	identity, _ := c.Get(ContextKeyIdentity).(*models.Identity)
	return identity
}
