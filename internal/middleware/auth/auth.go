package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/hairlyf/backend/internal/repo"
	"github.com/hairlyf/backend/internal/tokens"
)

// Gate authenticates requests from the Authorization header. The token
// subject is re-resolved against the user store on every request, so a
// deleted account stops working even with a live token.
type Gate struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

func NewGate(r *repo.GormRepo, secret []byte) *Gate {
	return &Gate{Repo: r, JWTSecret: secret}
}

func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.AccessClaimsFromToken(raw, g.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		userID, err := claims.SubjectID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
		}

		user, err := g.Repo.GetUserByID(c.Request().Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set("user_id", user.ID)
		c.Set("is_admin", user.IsAdmin)
		return next(c)
	}
}

// RequireAdmin must run after RequireAuth on the same route group.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get("is_admin").(bool)
		if !ok || !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "not authorized as an admin")
		}
		return next(c)
	}
}

// UserID pulls the authenticated user out of the request context.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}
