// Package middleware contains the HTTP middleware stack: session
// loading, sign-in enforcement, request logging, metrics and security
// headers.
package middleware

import (
	"net/http"

	"github.com/rithysak/backoffice/internal/auth"
	"github.com/rithysak/backoffice/internal/session"
)

// SessionMiddleware reads the session cookie and, when present, puts
// the CRM bearer token and operator into the request context. Requests
// without a valid cookie pass through anonymous.
type SessionMiddleware struct{}

// NewSessionMiddleware creates a new session middleware.
func NewSessionMiddleware() *SessionMiddleware {
	return &SessionMiddleware{}
}

// Handler returns middleware that loads the session into the context.
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.Read(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := auth.WithToken(r.Context(), sess.Token)
		ctx = auth.WithUser(ctx, &sess.User)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser redirects anonymous requests to the sign-in page. It must
// run after SessionMiddleware.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Chain applies middlewares to a handler, outermost first.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
