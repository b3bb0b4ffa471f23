package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "pwdassist/internal/errors"
)

const (
	sessionContextKey   = "auth.session"
	sessionIDContextKey = "auth.session_id"
)

// Gate decides per request whether a caller may proceed and which role
// branch applies. It only reads the session store; establishing and
// destroying sessions is the auth service's job.
type Gate struct {
	store  Store
	secure bool
	ttl    time.Duration
}

// NewGate creates the auth gate. secure controls the cookie Secure flag and
// should be true when serving over TLS in production.
func NewGate(store Store, secure bool, ttl time.Duration) *Gate {
	return &Gate{store: store, secure: secure, ttl: ttl}
}

// LoadSession resolves the session cookie and attaches the payload to the
// request context. A missing, expired or unreadable session leaves the
// request anonymous; rejection is left to the Require* guards.
func (g *Gate) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err == nil && cookie.Value != "" {
			if sess, err := g.store.Read(c.Request().Context(), cookie.Value); err == nil {
				c.Set(sessionContextKey, sess)
				c.Set(sessionIDContextKey, cookie.Value)
			}
		}
		return next(c)
	}
}

// RequireSession redirects anonymous requests to the login page.
func (g *Gate) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentSession(c) == nil {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// RequireSessionAPI rejects anonymous API requests with 401 JSON instead of
// a redirect. The sentinel is mapped by the error handler.
func (g *Gate) RequireSessionAPI(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentSession(c) == nil {
			return apperrors.ErrUnauthenticated
		}
		return next(c)
	}
}

// RequireRole redirects authenticated callers of the wrong role to their own
// landing page. The partition is total: an NGO never sees individual pages
// and vice versa.
func (g *Gate) RequireRole(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			if sess.Role != role {
				return c.Redirect(http.StatusFound, sess.Role.Landing())
			}
			return next(c)
		}
	}
}

// RequireRoleAPI rejects authenticated callers of the wrong role with 403.
func (g *Gate) RequireRoleAPI(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return apperrors.ErrUnauthenticated
			}
			if sess.Role != role {
				return apperrors.ErrForbidden
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session attached by LoadSession, or nil for an
// anonymous request.
func CurrentSession(c echo.Context) *Session {
	sess, _ := c.Get(sessionContextKey).(*Session)
	return sess
}

// CurrentSessionID returns the id of the resolved session, or "" when the
// request is anonymous.
func CurrentSessionID(c echo.Context) string {
	id, _ := c.Get(sessionIDContextKey).(string)
	return id
}

// SetSessionCookie delivers a session id to the client. HTTP-only and
// SameSite=Lax always; Secure in production.
func (g *Gate) SetSessionCookie(c echo.Context, id string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(g.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   g.secure,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func (g *Gate) ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   g.secure,
	})
}
