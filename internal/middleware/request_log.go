package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLog logs one structured line per request, tagged with a
// request id and the session when one is set.
func RequestLog(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			start := time.Now()

			entry := log.WithFields(logrus.Fields{
				"http.req.id":     requestID,
				"http.req.method": c.Request().Method,
				"http.req.path":   c.Request().URL.Path,
			})
			if sid, ok := SessionID(c); ok {
				entry = entry.WithField("session", sid)
			}

			err := next(c)

			entry.WithFields(logrus.Fields{
				"http.resp.status":  c.Response().Status,
				"http.resp.took_ms": time.Since(start).Milliseconds(),
			}).Info("request complete")

			return err
		}
	}
}
