// Package csrf protects form posts with the double-submit cookie
// pattern: a random token lives in a cookie and in a hidden form field,
// and a POST is accepted only when the two match. A cross-origin page
// can make the browser send the cookie but cannot read it to fill the
// form field.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the name of the hidden form field.
	FormFieldName = "csrf_token"

	tokenLength  = 32
	cookieMaxAge = 3600
)

// generateToken returns a random base64 token.
func generateToken() string {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to read random bytes: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(b)
}

// EnsureToken returns the request's CSRF token, minting and setting a
// new one when the cookie is missing. Handlers call this on GET so the
// rendered form carries a token.
func EnsureToken(w http.ResponseWriter, r *http.Request, isSecure bool) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	token := generateToken()
	setCookie(w, token, isSecure)
	return token
}

// ValidateRequest compares the cookie token against the submitted form
// field. ParseForm must have run already.
func ValidateRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	formToken := r.FormValue(FormFieldName)
	if formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(formToken)) == 1
}

// RefreshToken rotates the token after a successful submission.
func RefreshToken(w http.ResponseWriter, isSecure bool) string {
	token := generateToken()
	setCookie(w, token, isSecure)
	return token
}

func setCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: false, // the form field mirrors it
		Secure:   isSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
