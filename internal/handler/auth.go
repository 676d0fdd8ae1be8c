package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/rithysak/backoffice/internal/crm"
	"github.com/rithysak/backoffice/internal/csrf"
	"github.com/rithysak/backoffice/internal/forms"
	"github.com/rithysak/backoffice/internal/session"
)

// SignInAPI is the slice of the CRM client the auth handler needs.
type SignInAPI interface {
	SignIn(ctx context.Context, email, password string) (*crm.Session, error)
}

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	api      SignInAPI
	renderer *Renderer
	logger   *slog.Logger
	isSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api SignInAPI, renderer *Renderer, logger *slog.Logger, isSecure bool) *AuthHandler {
	return &AuthHandler{
		api:      api,
		renderer: renderer,
		logger:   logger,
		isSecure: isSecure,
	}
}

type loginData struct {
	CSRFToken string
	Form      *forms.Form
	Flash     string
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "auth/login", loginData{
		CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
		Form:      forms.New(),
		Flash:     r.URL.Query().Get("flash"),
	})
}

// Login exchanges the submitted credentials for a CRM session and sets
// the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	if !csrf.ValidateRequest(r) {
		http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
		return
	}

	form := forms.FromURLValues(r.PostForm)
	ok := form.Validate(
		forms.Rule{Field: "email", Check: forms.Required("Email is required")},
		forms.Rule{Field: "email", Check: forms.Email("Enter a valid email address")},
		forms.Rule{Field: "password", Check: forms.Required("Password is required")},
	)
	if !ok {
		h.renderer.RenderHTTP(w, "auth/login", loginData{
			CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
			Form:      form,
		})
		return
	}

	sess, err := h.api.SignIn(r.Context(), form.Get("email"), form.Get("password"))
	if err != nil {
		h.logger.Info("sign-in rejected", "email", form.Get("email"), "error", err)
		form.Errors["password"] = "Invalid email or password."
		h.renderer.RenderHTTP(w, "auth/login", loginData{
			CSRFToken: csrf.EnsureToken(w, r, h.isSecure),
			Form:      form,
		})
		return
	}

	if err := session.Write(w, session.Session{Token: sess.Token, User: sess.User}, h.isSecure); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	csrf.RefreshToken(w, h.isSecure)

	h.logger.Info("operator signed in", "user_id", sess.User.ID)
	http.Redirect(w, r, "/leads", http.StatusSeeOther)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.Clear(w, h.isSecure)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
