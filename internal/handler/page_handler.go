package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pwdassist/internal/auth"
)

// renderPage renders a named template with the current session (nil for
// anonymous) and any pending flash message.
func renderPage(c echo.Context, name string) error {
	return c.Render(http.StatusOK, name, map[string]interface{}{
		"User":  auth.CurrentSession(c),
		"Flash": popFlash(c),
	})
}

// PageHandler serves the server-rendered pages. Access control lives in the
// auth gate middleware; by the time a handler runs the role is already right.
type PageHandler struct{}

// NewPageHandler creates a page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Index renders the public landing page.
func (h *PageHandler) Index(c echo.Context) error {
	return renderPage(c, "landing")
}

// Home renders the individual home page.
func (h *PageHandler) Home(c echo.Context) error {
	return renderPage(c, "home")
}

// Services renders the services hub.
func (h *PageHandler) Services(c echo.Context) error {
	return renderPage(c, "services")
}

// Resources renders the resources guide.
func (h *PageHandler) Resources(c echo.Context) error {
	return renderPage(c, "resources")
}

// Community renders the community page.
func (h *PageHandler) Community(c echo.Context) error {
	return renderPage(c, "community")
}

// About renders the about page.
func (h *PageHandler) About(c echo.Context) error {
	return renderPage(c, "about")
}

// NgoDashboard renders the NGO dashboard.
func (h *PageHandler) NgoDashboard(c echo.Context) error {
	return renderPage(c, "ngo_dashboard")
}

// NgoAnalyze renders the NGO analysis page.
func (h *PageHandler) NgoAnalyze(c echo.Context) error {
	return renderPage(c, "ngo_analyze")
}
