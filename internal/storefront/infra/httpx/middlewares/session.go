// Package middlewares contains the HTTP middlewares specific to the
// storefront surface.
package middlewares

import (
	"context"
	"net/http"

	"github.com/jcamposr/storefront-gateway/internal/storefront/core/session"
)

// CookieName carries the visitor's session ID between requests.
const CookieName = "storefront_session"

// ctxKey is unexported so no other package can collide with our context
// values.
type ctxKey string

const sessionKey ctxKey = "storefront-session"

// AttachSession resolves the visitor's session from the cookie, creating a
// fresh one (empty cart) when the cookie is missing or stale, and stores it
// in the request context.
func AttachSession(registry *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session

			if cookie, err := r.Cookie(CookieName); err == nil {
				if existing, ok := registry.Get(cookie.Value); ok {
					sess = existing
				}
			}

			if sess == nil {
				sess = registry.Create()
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session attached by AttachSession, or nil
// when the middleware did not run (e.g. in isolated handler tests).
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}
