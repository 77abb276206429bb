package auth

import (
	"net/http"
	"time"

	"boutique-backend/internal/config"
)

// SetSessionCookie writes the session token as an HttpOnly cookie. The
// browser never exposes it to scripts; SameSite=Lax keeps it off
// cross-site POSTs.
func SetSessionCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.JWT.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.JWT.ExpirationMinutes * 60,
		HttpOnly: true,
		Secure:   cfg.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.JWT.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.JWT.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
