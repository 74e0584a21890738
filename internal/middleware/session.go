package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// CtxSessionIDKey holds the browsing session id in echo's context.
	CtxSessionIDKey = "session_id"

	sessionCookieName = "vitrine_session"
)

// Session assigns each browser a random session id cookie. The cart
// ledger is keyed by it; the cookie carries no identity beyond that.
func Session(cookieTTL time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string

			if ck, err := c.Cookie(sessionCookieName); err == nil && ck.Value != "" {
				sessionID = ck.Value
			} else {
				sessionID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     sessionCookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(cookieTTL / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sessionID)
			return next(c)
		}
	}
}

// SessionID pulls the session id set by Session from the context.
func SessionID(c echo.Context) (string, bool) {
	v, ok := c.Get(CtxSessionIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
