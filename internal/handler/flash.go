package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "pwd_flash"

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// setFlash queues a message for the next page render. The cookie value is
// "category|message", URL-escaped.
func setFlash(c echo.Context, category, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(category + "|" + message),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	category, message, found := strings.Cut(raw, "|")
	if !found {
		return &Flash{Category: "info", Message: raw}
	}
	return &Flash{Category: category, Message: message}
}
