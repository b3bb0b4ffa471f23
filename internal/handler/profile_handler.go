package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pwdassist/internal/auth"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/service"
)

// ProfileHandler serves the profile page and profile updates.
type ProfileHandler struct {
	profileService service.ProfileService
	sessions       auth.Store
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(profileService service.ProfileService, sessions auth.Store) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, sessions: sessions}
}

// UpdateProfileRequest represents the profile form fields.
type UpdateProfileRequest struct {
	FullName string `form:"fullname"`
	Email    string `form:"email"`
}

// Show renders the profile page from the fresh user row.
func (h *ProfileHandler) Show(c echo.Context) error {
	sess := auth.CurrentSession(c)

	user, err := h.profileService.Get(c.Request().Context(), sess.UserID)
	if err != nil {
		c.Logger().Errorf("load profile: %v", err)
		setFlash(c, "error", "Unable to load profile")
		return c.Redirect(http.StatusFound, sess.Role.Landing())
	}

	return c.Render(http.StatusOK, "profile", map[string]interface{}{
		"User":    sess,
		"Profile": user,
		"Flash":   popFlash(c),
	})
}

// Update rewrites full name and email, then refreshes the live session so
// the new identity shows up without a re-login.
func (h *ProfileHandler) Update(c echo.Context) error {
	sess := auth.CurrentSession(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		setFlash(c, "error", "All fields are required")
		return c.Redirect(http.StatusFound, "/profile")
	}

	err := h.profileService.Update(c.Request().Context(), sess.UserID, req.FullName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			setFlash(c, "error", "All fields are required")
		case errors.Is(err, apperrors.ErrDuplicate):
			setFlash(c, "error", "Email already in use")
		default:
			c.Logger().Errorf("update profile: %v", err)
			setFlash(c, "error", "Error updating profile")
		}
		return c.Redirect(http.StatusFound, "/profile")
	}

	updated := *sess
	updated.FullName = req.FullName
	updated.Email = req.Email
	if err := h.sessions.Update(c.Request().Context(), auth.CurrentSessionID(c), updated); err != nil {
		c.Logger().Errorf("refresh session: %v", err)
	}

	setFlash(c, "success", "Profile updated successfully!")
	return c.Redirect(http.StatusFound, "/profile")
}
