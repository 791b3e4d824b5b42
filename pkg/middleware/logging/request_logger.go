package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
	authmw "github.com/Skotchmaster/storefront/pkg/middleware/auth"
)

// RequestLogger puts a request-scoped logger into the context and writes one
// completion line per request. The line names the session user when the auth
// middleware resolved one, and the :id or :trackingNumber route param the
// request addressed.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			attrs := []any{
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			attrs = append(attrs, target(c)...)
			attrs = append(attrs, session(c)...)

			status := c.Response().Status
			switch {
			case status >= 500:
				if err != nil {
					attrs = append(attrs, "error", err.Error())
				}
				l.Error("request_completed", attrs...)
			case status >= 400:
				l.Warn("request_completed", attrs...)
			default:
				l.Info("request_completed", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}

// requestID prefers the id the client sent and falls back to the one the
// RequestID middleware set on the response.
func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		c.Response().Header().Set(echo.HeaderXRequestID, rid)
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func target(c echo.Context) []any {
	for _, name := range []string{"id", "trackingNumber"} {
		if v := c.Param(name); v != "" {
			return []any{name, v}
		}
	}
	return nil
}

func session(c echo.Context) []any {
	uid, _ := c.Get(authmw.CtxUserID).(string)
	if uid == "" {
		return nil
	}
	role, _ := c.Get(authmw.CtxRole).(string)
	return []any{"user_id", uid, "role", role}
}
