package loginflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-vault/pkg/audit"
	"github.com/tendant/simple-vault/pkg/authn"
	"github.com/tendant/simple-vault/pkg/authz"
	"github.com/tendant/simple-vault/pkg/report"
	"github.com/tendant/simple-vault/pkg/role"
	"github.com/tendant/simple-vault/pkg/session"
	"github.com/tendant/simple-vault/pkg/sso"
	"github.com/tendant/simple-vault/pkg/user"
	"github.com/tendant/simple-vault/pkg/utils"
)

// Outcome messages returned to callers. Policy rejections, credential
// rejections, and store failures all surface through the same status plus
// message pair.
const (
	MessageBypassNotAllowed = "bypass SSO not allowed"
	MessageTwoStepRequired  = "two-step authentication required"
	MessageAuthFailed       = "authentication failed"
	MessageUserNotFound     = "user not found"
	MessageLoginFailed      = "login failed"
)

// SystemSettings is a read-only snapshot of environment-wide configuration,
// assembled on demand.
type SystemSettings struct {
	EveryoneGroup string `json:"everyoneGroup"`
	SsoEnabled    bool   `json:"ssoEnabled"`
	LogoutURL     string `json:"logoutUrl"`
}

// Deps bundles the collaborators the login orchestration depends on.
type Deps struct {
	Directory     user.Directory
	System        user.SystemInitializer
	Authenticator authn.Authenticator
	Sso           sso.Authenticator
	Roles         role.Retriever
	Authorizer    authz.Authorizer
	Audit         audit.Logger
	Reports       *report.Catalog
}

// Service composes the collaborators into the login, logout, and
// authorization-lookup operations.
type Service struct {
	directory     user.Directory
	system        user.SystemInitializer
	authenticator authn.Authenticator
	sso           sso.Authenticator
	roles         role.Retriever
	authorizer    authz.Authorizer
	audit         audit.Logger
	reports       *report.Catalog
}

func NewService(deps Deps) *Service {
	return &Service{
		directory:     deps.Directory,
		system:        deps.System,
		authenticator: deps.Authenticator,
		sso:           deps.Sso,
		roles:         deps.Roles,
		authorizer:    deps.Authorizer,
		audit:         deps.Audit,
		reports:       deps.Reports,
	}
}

// Login authenticates principal with credentials and, on success, attaches
// the session to the matching active user. Exactly one audit entry is
// written per call regardless of outcome.
func (s *Service) Login(ctx context.Context, sess *session.Context, principal string, credentials []string) authn.Result {
	principal = utils.TruncateString(principal, user.LengthUsername)

	var result authn.Result
	if s.sso.Enabled() && !s.sso.BypassAllowed(principal) {
		// SSO is in force and this principal may not authenticate locally.
		// The authenticator is never consulted.
		result = authn.Failure(MessageBypassNotAllowed)
	} else {
		switch s.authenticator.Authenticate(ctx, principal, credentials) {
		case authn.StatusSuccess:
			if message := s.loginDB(ctx, sess, principal); message != "" {
				result = authn.Failure(message)
			} else {
				result = authn.Success()
			}
		case authn.StatusTwoStepRequired:
			result = authn.TwoStepRequired(MessageTwoStepRequired)
		default:
			result = authn.Failure(MessageAuthFailed)
		}
	}

	s.writeAudit(ctx, audit.Entry{
		Principal: principal,
		IP:        sess.IP(),
		Action:    audit.ActionLogin,
		Success:   result.Status == authn.StatusSuccess,
		Message:   result.Message,
	})
	return result
}

// CheckSsoLogin is the credential-less login path used when SSO asserted the
// identity upstream. With SSO disabled it is a no-op returning success and
// writing no audit entry.
func (s *Service) CheckSsoLogin(ctx context.Context, sess *session.Context) authn.Result {
	if !s.sso.Enabled() {
		return authn.Success()
	}

	principal := utils.TruncateString(s.sso.Principal(ctx), user.LengthUsername)

	var result authn.Result
	if message := s.loginDB(ctx, sess, principal); message != "" {
		result = authn.Failure(message)
	} else {
		result = authn.Success()
	}

	s.writeAudit(ctx, audit.Entry{
		Principal: principal,
		IP:        sess.IP(),
		Action:    audit.ActionLogin,
		Success:   result.Status == authn.StatusSuccess,
		Message:   result.Message,
	})
	return result
}

// loginDB attaches the session to the active user record for an already
// authenticated principal. It returns an empty message on success and the
// failure message otherwise. Collaborator reads happen before the
// last-login update is persisted, and the session is mutated only after it,
// so any failure leaves both the stored record and the session untouched.
func (s *Service) loginDB(ctx context.Context, sess *session.Context, principal string) string {
	u, err := s.directory.FindActiveByUsername(ctx, principal)
	if err != nil {
		slog.Error("user lookup failed during login", "username", principal, "error", err)
		return MessageLoginFailed
	}
	if u == nil {
		return MessageUserNotFound
	}

	roles, err := s.roles.RetrieveRoles(ctx, *u)
	if err != nil {
		slog.Error("failed to retrieve session roles", "username", principal, "error", err)
		return MessageLoginFailed
	}

	now := time.Now().UTC()
	u.LastLogin = &now
	if err := s.directory.Save(ctx, u); err != nil {
		slog.Error("failed to persist last login", "username", principal, "error", err)
		return MessageLoginFailed
	}

	sess.SetUsername(principal)
	sess.SetRoles(roles)
	return ""
}

// Logout records the logout, clears the session identity, and invalidates
// the session. It cannot fail and always returns true.
func (s *Service) Logout(ctx context.Context, sess *session.Context) bool {
	s.writeAudit(ctx, audit.Entry{
		Principal: sess.Username(),
		IP:        sess.IP(),
		Action:    audit.ActionLogout,
		Success:   true,
	})

	sess.SetUsername("")
	sess.SetRoles(nil)
	sess.Invalidate()
	return true
}

// GetLogin returns the currently logged-in user with the session's role set
// attached, or nil when nobody is logged in. A session username that no
// longer resolves to an active user reads as logged out rather than an
// error.
func (s *Service) GetLogin(ctx context.Context, sess *session.Context) (*user.User, error) {
	username := sess.Username()
	if username == "" {
		return nil, nil
	}

	u, err := s.directory.FindActiveByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up current user: %w", err)
	}
	if u == nil {
		return nil, nil
	}

	// Roles are a session-layer decoration, not a persisted attribute.
	u.Roles = sess.Roles()
	return u, nil
}

// GetLoginAuthorizations answers a bulk permission check for the current
// user. An empty request expands to every defined function; the result holds
// one entry per requested function. The authorizer is consulted even when
// nobody is logged in.
func (s *Service) GetLoginAuthorizations(ctx context.Context, sess *session.Context, requested []authz.Function) (map[authz.Function]bool, error) {
	if len(requested) == 0 {
		requested = authz.AllFunctions()
	}

	current, err := s.GetLogin(ctx, sess)
	if err != nil {
		return nil, err
	}

	granted := make(map[authz.Function]bool, len(requested))
	for _, fn := range requested {
		granted[fn] = s.authorizer.IsAuthorized(ctx, current, string(fn))
	}
	return granted, nil
}

// GetLoginReports filters the report catalog to the reports the current user
// may view, preserving catalog order.
func (s *Service) GetLoginReports(ctx context.Context, sess *session.Context) ([]report.Report, error) {
	current, err := s.GetLogin(ctx, sess)
	if err != nil {
		return nil, err
	}

	var visible []report.Report
	for _, r := range s.reports.Reports() {
		if s.authorizer.IsAuthorized(ctx, current, r.ViewKey()) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// GetSystemSettings runs the idempotent system initialization check and
// assembles the configuration snapshot.
func (s *Service) GetSystemSettings(ctx context.Context) (SystemSettings, error) {
	if err := s.system.VerifyInitialization(ctx); err != nil {
		return SystemSettings{}, fmt.Errorf("system initialization check failed: %w", err)
	}
	return SystemSettings{
		EveryoneGroup: s.system.EveryoneGroup(),
		SsoEnabled:    s.sso.Enabled(),
		LogoutURL:     s.sso.LogoutURL(),
	}, nil
}

// Ping makes sure the session carries an anti-forgery token and reports
// liveness. It is not an authentication check.
func (s *Service) Ping(sess *session.Context) bool {
	if _, err := sess.InitCsrfToken(); err != nil {
		slog.Error("failed to initialize csrf token", "error", err)
	}
	return true
}

// writeAudit records a login or logout attempt. A failed audit write is
// logged but never changes the outcome returned to the caller.
func (s *Service) writeAudit(ctx context.Context, entry audit.Entry) {
	if err := s.audit.Log(ctx, entry); err != nil {
		slog.Error("failed to write audit entry",
			"action", entry.Action,
			"principal", entry.Principal,
			"error", err)
	}
}
