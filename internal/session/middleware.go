package session

import (
	"context"
	"net/http"
	"time"
)

const CookieName = "peoplefinder_view"

type contextKey string

const sessionContextKey contextKey = "session"

func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey).(*Session)
	return sess
}

// Middleware attaches a view session to every request, starting one and
// setting its cookie when the request has none or an expired one.
type Middleware struct {
	store  *Store
	secure bool
}

func NewMiddleware(store *Store, secure bool) *Middleware {
	return &Middleware{store: store, secure: secure}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if cookie, err := r.Cookie(CookieName); err == nil {
			token = cookie.Value
		}

		sess, created := m.store.Acquire(token)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sess.ID.String(),
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int((24 * time.Hour).Seconds()),
			})
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSession(r.Context(), sess)))
	})
}
