package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pwdassist/internal/auth"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/service"
)

// AuthHandler handles the login, signup and logout form endpoints.
type AuthHandler struct {
	authService service.AuthService
	gate        *auth.Gate
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, gate *auth.Gate) *AuthHandler {
	return &AuthHandler{authService: authService, gate: gate}
}

// LoginRequest represents the login form fields.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// SignupRequest represents the signup form fields.
type SignupRequest struct {
	FullName string `form:"fullname"`
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	UserType string `form:"user_type"`
}

// LoginPage renders the login/signup page.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return renderPage(c, "login")
}

// Login authenticates a user by username or email and redirects by role.
// Any credential failure yields the same generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		setFlash(c, "error", "Invalid username or password")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, sessionID, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			setFlash(c, "error", "Invalid username or password")
		} else {
			c.Logger().Errorf("login: %v", err)
			setFlash(c, "error", "An error occurred during login")
		}
		return c.Redirect(http.StatusFound, "/login")
	}

	h.gate.SetSessionCookie(c, sessionID)
	setFlash(c, "success", "Login successful!")
	return c.Redirect(http.StatusFound, auth.Role(user.Role).Landing())
}

// Signup registers a new account and logs it in immediately. A duplicate
// username or email gets its own message, distinct from generic failure.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		setFlash(c, "error", "All fields are required")
		return c.Redirect(http.StatusFound, "/login")
	}

	user, sessionID, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.UserType,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			setFlash(c, "error", err.Error())
		case errors.Is(err, apperrors.ErrDuplicate):
			setFlash(c, "error", "Username or email already exists")
		default:
			c.Logger().Errorf("signup: %v", err)
			setFlash(c, "error", "Registration failed. Please try again.")
		}
		return c.Redirect(http.StatusFound, "/login")
	}

	h.gate.SetSessionCookie(c, sessionID)
	setFlash(c, "success", "Registration successful!")
	return c.Redirect(http.StatusFound, auth.Role(user.Role).Landing())
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), auth.CurrentSessionID(c)); err != nil {
		c.Logger().Errorf("logout: %v", err)
	}
	h.gate.ClearSessionCookie(c)
	setFlash(c, "success", "Logged out successfully")
	return c.Redirect(http.StatusFound, "/")
}
