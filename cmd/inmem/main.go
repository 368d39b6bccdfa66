package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"

	"github.com/tendant/simple-vault/pkg/audit"
	"github.com/tendant/simple-vault/pkg/authn"
	"github.com/tendant/simple-vault/pkg/authz"
	"github.com/tendant/simple-vault/pkg/config"
	"github.com/tendant/simple-vault/pkg/loginflow"
	"github.com/tendant/simple-vault/pkg/ratelimit"
	"github.com/tendant/simple-vault/pkg/report"
	"github.com/tendant/simple-vault/pkg/role"
	"github.com/tendant/simple-vault/pkg/session"
	"github.com/tendant/simple-vault/pkg/sso"
	"github.com/tendant/simple-vault/pkg/token"
	"github.com/tendant/simple-vault/pkg/user"
)

// Self-contained server backed by in-memory stores. Seeds an admin account
// and role grants on startup; useful for demos and local development.

type JwtConfig struct {
	JwtSecret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	CookieHttpOnly bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
}

type Config struct {
	AppConfig app.AppConfig
	JwtConfig JwtConfig
}

func main() {
	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	loginConfig := config.NewLoginConfigFromEnv()
	ssoConfig := config.NewSsoConfigFromEnv()

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	ctx := context.Background()

	userRepo := user.NewInMemoryUserRepository()
	roleRepo := role.NewInMemoryRoleRepository()
	auditRepo := audit.NewInMemoryAuditRepository()

	userService := user.NewUserService(userRepo, user.Options{
		EveryoneGroup: loginConfig.EveryoneGroup,
	})
	if err := userService.VerifyInitialization(ctx); err != nil {
		slog.Error("failed to initialize user directory", "error", err)
		os.Exit(-1)
	}

	catalog := report.DefaultCatalog()
	authorizer := seedGrants(ctx, roleRepo, catalog)

	var ssoAuth sso.Authenticator
	if ssoConfig.Enabled {
		ssoAuth = sso.NewJwtAuthenticator(ssoConfig)
	} else {
		ssoAuth = sso.NewDisabledAuthenticator()
	}

	authenticator := authn.NewTwoStepAuthenticator(
		authn.NewPasswordAuthenticator(userRepo),
		userRepo,
	)

	flow := loginflow.NewService(loginflow.Deps{
		Directory:     userRepo,
		System:        userService,
		Authenticator: authenticator,
		Sso:           ssoAuth,
		Roles:         role.NewRepositoryRetriever(roleRepo),
		Authorizer:    authorizer,
		Audit:         audit.NewService(auditRepo),
		Reports:       catalog,
	})

	jwtService := token.NewJwtServiceOptions(
		cfg.JwtConfig.JwtSecret,
		token.WithExpiration(loginConfig.SessionTokenExpiration),
		token.WithCookieHttpOnly(cfg.JwtConfig.CookieHttpOnly),
		token.WithCookieSecure(cfg.JwtConfig.CookieSecure),
	)
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtConfig.JwtSecret), nil)

	sessions := session.NewStore()
	limiter := ratelimit.NewLimiter(loginConfig.RateLimitCapacity, loginConfig.RateLimitPerSecond, time.Hour)

	handle := loginflow.NewHandle(flow, jwtService, sessions)
	server.R.Group(func(r chi.Router) {
		r.Use(session.Verifier(jwtAuth))
		r.Use(session.Resolver(sessions))
		r.Use(ratelimit.PerIP(limiter))
		r.Route("/api", func(r chi.Router) {
			handle.RegisterRoutes(r)
		})
	})

	server.Run()
}

// seedGrants creates the built-in roles, assigns the admin role to the
// seeded admin account, and builds the authorizer grants.
func seedGrants(ctx context.Context, roleRepo *role.InMemoryRoleRepository, catalog *report.Catalog) *authz.RoleAuthorizer {
	adminRole, err := roleRepo.CreateRole(ctx, "ADMIN")
	if err != nil {
		slog.Error("failed to seed admin role", "error", err)
		os.Exit(-1)
	}
	if _, err := roleRepo.CreateRole(ctx, "USER"); err != nil {
		slog.Error("failed to seed user role", "error", err)
		os.Exit(-1)
	}
	if err := roleRepo.AssignRole(ctx, "admin", adminRole); err != nil {
		slog.Error("failed to assign admin role", "error", err)
		os.Exit(-1)
	}

	keys := make([]string, 0, len(authz.AllFunctions()))
	for _, fn := range authz.AllFunctions() {
		keys = append(keys, string(fn))
	}
	for _, r := range catalog.Reports() {
		keys = append(keys, r.ViewKey())
	}
	return authz.NewRoleAuthorizer().Grant("ADMIN", keys...)
}
