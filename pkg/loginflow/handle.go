package loginflow

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-vault/pkg/authn"
	"github.com/tendant/simple-vault/pkg/authz"
	"github.com/tendant/simple-vault/pkg/session"
	"github.com/tendant/simple-vault/pkg/sso"
	"github.com/tendant/simple-vault/pkg/token"
)

// Handle exposes the login operations over HTTP. The session middleware must
// run before these handlers so every request carries a session context.
type Handle struct {
	flow     *Service
	jwt      *token.Jwt
	sessions *session.Store
}

func NewHandle(flow *Service, jwt *token.Jwt, sessions *session.Store) *Handle {
	return &Handle{
		flow:     flow,
		jwt:      jwt,
		sessions: sessions,
	}
}

// RegisterRoutes registers the login routes.
func (h *Handle) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Get("/sso/login", h.CheckSsoLogin)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.GetLogin)
	r.Get("/authorizations", h.GetLoginAuthorizations)
	r.Get("/reports", h.GetLoginReports)
	r.Get("/settings", h.GetSystemSettings)
	r.Get("/ping", h.Ping)
}

// LoginRequest is the login form. Passcode carries the second factor when
// two-step authentication is in force.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Passcode string `json:"passcode,omitempty"`
}

// LoginResponse reports the outcome of a login attempt.
type LoginResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// UserInfo is the caller-facing shape of a logged-in user.
type UserInfo struct {
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

func (h *Handle) Login(w http.ResponseWriter, r *http.Request) {
	data := LoginRequest{}
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		http.Error(w, "unable to parse body", http.StatusBadRequest)
		return
	}

	credentials := []string{data.Password}
	if data.Passcode != "" {
		credentials = append(credentials, data.Passcode)
	}

	sess := session.FromContext(r.Context())
	result := h.flow.Login(r.Context(), sess, data.Username, credentials)

	h.respondLogin(w, r, sess, result)
}

func (h *Handle) CheckSsoLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if assertion := ssoAssertion(r); assertion != "" {
		ctx = sso.WithAssertion(ctx, assertion)
	}

	sess := session.FromContext(ctx)
	result := h.flow.CheckSsoLogin(ctx, sess)

	h.respondLogin(w, r, sess, result)
}

func (h *Handle) respondLogin(w http.ResponseWriter, r *http.Request, sess *session.Context, result authn.Result) {
	if result.Status == authn.StatusSuccess {
		// Hand the authenticated state a fresh session ID so a token planted
		// before login cannot name the authenticated session.
		sess = h.sessions.Rotate(sess)
		tokenStr, err := h.jwt.CreateSessionToken(sess.ID())
		if err != nil {
			slog.Error("failed to create session token", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		h.jwt.SetSessionCookie(w, tokenStr)
	} else {
		render.Status(r, http.StatusUnauthorized)
	}

	render.JSON(w, r, LoginResponse{
		Status:  result.Status.String(),
		Message: result.Message,
	})
}

func (h *Handle) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	ok := h.flow.Logout(r.Context(), sess)

	h.jwt.ClearSessionCookie(w)
	render.JSON(w, r, map[string]bool{"loggedOut": ok})
}

func (h *Handle) GetLogin(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	u, err := h.flow.GetLogin(r.Context(), sess)
	if err != nil {
		slog.Error("failed to get current user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if u == nil {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}

	info := UserInfo{}
	copier.Copy(&info, u)
	render.JSON(w, r, info)
}

func (h *Handle) GetLoginAuthorizations(w http.ResponseWriter, r *http.Request) {
	var requested []authz.Function
	for _, name := range r.URL.Query()["function"] {
		requested = append(requested, authz.Function(name))
	}

	sess := session.FromContext(r.Context())
	granted, err := h.flow.GetLoginAuthorizations(r.Context(), sess, requested)
	if err != nil {
		slog.Error("failed to compute authorizations", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render.JSON(w, r, granted)
}

func (h *Handle) GetLoginReports(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	reports, err := h.flow.GetLoginReports(r.Context(), sess)
	if err != nil {
		slog.Error("failed to list reports", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render.JSON(w, r, reports)
}

func (h *Handle) GetSystemSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.flow.GetSystemSettings(r.Context())
	if err != nil {
		slog.Error("failed to assemble system settings", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	render.JSON(w, r, settings)
}

func (h *Handle) Ping(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	alive := h.flow.Ping(sess)

	render.JSON(w, r, map[string]interface{}{
		"alive":     alive,
		"csrfToken": sess.CsrfToken(),
	})
}

// ssoAssertion extracts the upstream SSO assertion from the request, header
// first, query parameter as fallback.
func ssoAssertion(r *http.Request) string {
	if assertion := r.Header.Get("X-Sso-Assertion"); assertion != "" {
		return assertion
	}
	return r.URL.Query().Get("assertion")
}
