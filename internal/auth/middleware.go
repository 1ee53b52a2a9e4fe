package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "auth.principal"

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Middleware resolves an Authorization bearer token into a Principal stored
// on the request context. Requests without a token pass through anonymous;
// RequireCapability decides whether that is acceptable per route.
func Middleware(tokens *Tokens) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Error: "malformed authorization header",
					Code:  "unauthorized",
				})
			}

			principal, err := tokens.Verify(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Error: "invalid or expired token",
					Code:  "unauthorized",
				})
			}

			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// RequireCapability guards a route: anonymous callers get 401 and
// authenticated callers lacking the capability get 403.
func RequireCapability(capability string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Error: "authentication required",
					Code:  "unauthorized",
				})
			}
			if !principal.HasCapability(capability) {
				return c.JSON(http.StatusForbidden, errorBody{
					Error: "User has no authority to perform this action",
					Code:  "forbidden",
				})
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the verified principal for the request, if any.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	principal, ok := c.Get(principalContextKey).(Principal)
	return principal, ok
}
