// Package session stores the operator's sign-in in a cookie.
//
// The cookie value is the base64 of a small JSON blob holding the CRM
// bearer token and the operator's identity. The token is opaque to this
// application; the CRM validates it on every upstream call, so the
// cookie carries no signature of its own.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/rithysak/backoffice/internal/domain"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "backoffice_session"

	// CookieMaxAge sets the cookie expiration (7 days).
	CookieMaxAge = 7 * 24 * 60 * 60
)

// Session is what the cookie holds.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Write sets the session cookie on the response.
func Write(w http.ResponseWriter, sess Session, isSecure bool) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session cookie. The second return is false when the
// cookie is missing or does not decode; a garbled cookie reads as
// signed out.
func Read(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return Session{}, false
	}
	payload, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil || sess.Token == "" {
		return Session{}, false
	}
	return sess, true
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
