package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// Auth validates the session JWT from the "token" cookie (Authorization
// bearer fallback) and stores the subject id on the request context. User
// and admin routes use different signing secrets, so a user token never
// opens an admin route.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing, access denied")
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token, access denied")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token, access denied")
			}
			id, _ := claims["id"].(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token, access denied")
			}

			c.Set(userIDKey, id)
			return next(c)
		}
	}
}

// UserID returns the authenticated subject id set by Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
