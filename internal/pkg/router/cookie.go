package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/shandysiswandi/blipzo-admin/internal/pkg/config"
)

// CookieOptions are the attributes shared by every credential cookie.
type CookieOptions struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// CookieOptionsFromConfig reads http.cookie.* settings.
//
// Secure is on unless explicitly set to "false". SameSite is Lax unless set to
// "none" or "strict".
func CookieOptionsFromConfig(cfg config.Config) CookieOptions {
	opts := CookieOptions{
		Domain:   strings.TrimSpace(cfg.GetString("http.cookie.domain")),
		Path:     strings.TrimSpace(cfg.GetString("http.cookie.path")),
		Secure:   !strings.EqualFold(strings.TrimSpace(cfg.GetString("http.cookie.secure")), "false"),
		SameSite: http.SameSiteLaxMode,
	}

	if opts.Path == "" {
		opts.Path = "/"
	}

	switch strings.ToLower(strings.TrimSpace(cfg.GetString("http.cookie.same_site"))) {
	case "none":
		opts.SameSite = http.SameSiteNoneMode
		opts.Secure = true
	case "strict":
		opts.SameSite = http.SameSiteStrictMode
	}

	return opts
}

// NewCookie builds an http-only cookie that lives for maxAge.
func (o CookieOptions) NewCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   o.Domain,
		Path:     o.Path,
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}

// ClearCookie builds a cookie that removes name from the client.
func (o CookieOptions) ClearCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Domain:   o.Domain,
		Path:     o.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: o.SameSite,
	}
}
