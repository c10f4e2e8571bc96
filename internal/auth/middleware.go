package auth

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"usermgmt/internal/model"
	"usermgmt/internal/repository"
)

const identityContextKey = "auth.identity"

// Identity is the minimal projection of the authenticated account attached
// to the request context by the access gate.
type Identity struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Status string `json:"status"`
}

// RequireActive is the second stage of the access gate. It runs after the
// JWT middleware has verified the token signature and expiry, and re-reads
// the account on every request: a status change must take effect
// immediately, not at next token expiry. Results are never cached.
func RequireActive(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "user not found or blocked")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}
			if user.Status == model.StatusBlocked {
				return echo.NewHTTPError(http.StatusForbidden, "user not found or blocked")
			}

			SetIdentity(c, Identity{
				ID:     user.ID,
				Email:  user.Email,
				Status: user.Status,
			})
			return next(c)
		}
	}
}

// SetIdentity attaches an authenticated identity to the request context.
func SetIdentity(c echo.Context, id Identity) {
	c.Set(identityContextKey, id)
}

// IdentityFrom returns the authenticated identity attached by RequireActive.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityContextKey).(Identity)
	return id, ok
}
