package web

import (
	"net/http"
	"net/url"
)

const flashErrorCookie = "flash_error"

// setFlashError stores a one-shot error shown on the next rendered page.
// Used for failures that happen before the controller is reached, such as
// rate limiting.
func setFlashError(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashErrorCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   5,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashError reads and clears the flash error cookie.
func popFlashError(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashErrorCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashErrorCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	val, _ := url.QueryUnescape(cookie.Value)
	return val
}
