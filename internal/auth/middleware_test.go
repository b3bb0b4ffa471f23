package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "pwdassist/internal/errors"
)

func newTestGate(t *testing.T) (*Gate, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(time.Hour)
	return NewGate(store, false, time.Hour), store
}

func newTestEcho(gate *Gate) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler
	e.Use(gate.LoadSession)

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/home", ok, gate.RequireRole(RoleIndividual))
	e.GET("/ngo/dashboard", ok, gate.RequireRole(RoleNGO))
	e.GET("/profile", ok, gate.RequireSession)
	e.GET("/api/students", ok, gate.RequireSessionAPI, gate.RequireRoleAPI(RoleNGO))
	return e
}

func loginAs(t *testing.T, store *MemoryStore, role Role) *http.Cookie {
	t.Helper()
	id, err := store.Create(context.Background(), Session{UserID: 1, Username: "u", Role: role})
	assert.NoError(t, err)
	return &http.Cookie{Name: CookieName, Value: id}
}

func TestGate_AnonymousRedirectsToLogin(t *testing.T) {
	gate, _ := newTestGate(t)
	e := newTestEcho(gate)

	for _, path := range []string{"/home", "/ngo/dashboard", "/profile"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
		assert.NotContains(t, rec.Body.String(), "ok", path)
	}
}

func TestGate_AnonymousAPIGets401(t *testing.T) {
	gate, _ := newTestGate(t)
	e := newTestEcho(gate)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
}

func TestGate_WrongRoleAPIGets403(t *testing.T) {
	gate, store := newTestGate(t)
	e := newTestEcho(gate)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.AddCookie(loginAs(t, store, RoleIndividual))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestGate_RolePartitionIsSymmetric(t *testing.T) {
	gate, store := newTestGate(t)
	e := newTestEcho(gate)

	tests := []struct {
		name     string
		role     Role
		path     string
		wantCode int
		wantLoc  string
	}{
		{name: "individual reaches home", role: RoleIndividual, path: "/home", wantCode: http.StatusOK},
		{name: "ngo reaches dashboard", role: RoleNGO, path: "/ngo/dashboard", wantCode: http.StatusOK},
		{name: "individual bounced off dashboard", role: RoleIndividual, path: "/ngo/dashboard", wantCode: http.StatusFound, wantLoc: "/home"},
		{name: "ngo bounced off home", role: RoleNGO, path: "/home", wantCode: http.StatusFound, wantLoc: "/ngo/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.AddCookie(loginAs(t, store, tt.role))
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get("Location"))
			}
		})
	}
}

func TestGate_DestroyedSessionIsAnonymous(t *testing.T) {
	gate, store := newTestGate(t)
	e := newTestEcho(gate)

	cookie := loginAs(t, store, RoleIndividual)
	assert.NoError(t, store.Destroy(context.Background(), cookie.Value))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGate_SessionCookieFlags(t *testing.T) {
	gate, _ := newTestGate(t)
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	gate.SetSessionCookie(c, "some-id")

	res := rec.Result()
	cookies := res.Cookies()
	assert.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.False(t, cookie.Secure) // secure=false outside production

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	gate.ClearSessionCookie(c)
	cookie = rec.Result().Cookies()[0]
	assert.Equal(t, -1, cookie.MaxAge)
	assert.Empty(t, cookie.Value)
}

func TestGate_ProductionCookieIsSecure(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	gate := NewGate(store, true, time.Hour)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	gate.SetSessionCookie(c, "some-id")

	assert.True(t, rec.Result().Cookies()[0].Secure)
}
