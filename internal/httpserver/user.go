package httpserver

import (
	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

type sessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// currentUser reads what the auth middleware stored on the context.
func currentUser(c echo.Context) sessionUser {
	get := func(key string) string {
		s, _ := c.Get(key).(string)
		return s
	}
	return sessionUser{
		ID:       get(middleware.CtxUserID),
		Username: get(middleware.CtxUsername),
		Role:     get(middleware.CtxRole),
	}
}
