package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pwdassist/internal/auth"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/handler"
)

// Register wires routes and middleware. The session is resolved once per
// request; the Require* guards on page groups enforce the role partition.
func Register(
	e *echo.Echo,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	pageHandler *handler.PageHandler,
	profileHandler *handler.ProfileHandler,
	studentHandler *handler.StudentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(gate.LoadSession)

	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.GET("/", pageHandler.Index)
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.POST("/signup", authHandler.Signup)
	e.GET("/logout", authHandler.Logout)

	// Authenticated routes shared by both roles
	account := e.Group("", gate.RequireSession)
	account.GET("/profile", profileHandler.Show)
	account.POST("/profile", profileHandler.Update)

	// Individual-role pages
	individual := e.Group("", gate.RequireRole(auth.RoleIndividual))
	individual.GET("/home", pageHandler.Home)
	individual.GET("/services", pageHandler.Services)
	individual.GET("/resources", pageHandler.Resources)
	individual.GET("/community", pageHandler.Community)
	individual.GET("/about", pageHandler.About)

	// NGO-role pages
	ngo := e.Group("/ngo", gate.RequireRole(auth.RoleNGO))
	ngo.GET("/dashboard", pageHandler.NgoDashboard)
	ngo.GET("/analyze", pageHandler.NgoAnalyze)

	// Students API (NGO only, JSON errors instead of redirects)
	api := e.Group("/api", gate.RequireSessionAPI, gate.RequireRoleAPI(auth.RoleNGO))
	api.GET("/students", studentHandler.List)
	api.POST("/students", studentHandler.Create)
	api.PUT("/students/:id", studentHandler.Update)
	api.DELETE("/students/:id", studentHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
