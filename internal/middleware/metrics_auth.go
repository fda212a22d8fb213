package middleware

import (
	"crypto/subtle"
	"net/http"
)

// MetricsAuth guards the metrics endpoint with basic authentication.
type MetricsAuth struct {
	username string
	password string
	enabled  bool
}

// NewMetricsAuth returns the guard. If both username and password are empty,
// authentication is disabled.
func NewMetricsAuth(username, password string) *MetricsAuth {
	return &MetricsAuth{
		username: username,
		password: password,
		enabled:  username != "" || password != "",
	}
}

func (m *MetricsAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			m.unauthorized(w)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(m.username)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(m.password)) == 1
		if !userMatch || !passMatch {
			m.unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *MetricsAuth) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
