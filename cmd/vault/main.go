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
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-vault/pkg/audit"
	"github.com/tendant/simple-vault/pkg/authn"
	"github.com/tendant/simple-vault/pkg/authz"
	"github.com/tendant/simple-vault/pkg/config"
	"github.com/tendant/simple-vault/pkg/loginflow"
	"github.com/tendant/simple-vault/pkg/notification"
	"github.com/tendant/simple-vault/pkg/ratelimit"
	"github.com/tendant/simple-vault/pkg/report"
	"github.com/tendant/simple-vault/pkg/role"
	"github.com/tendant/simple-vault/pkg/session"
	"github.com/tendant/simple-vault/pkg/sso"
	"github.com/tendant/simple-vault/pkg/token"
	"github.com/tendant/simple-vault/pkg/user"
)

type VaultDbConfig struct {
	Host     string `env:"VAULT_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"VAULT_PG_PORT" env-default:"5432"`
	Database string `env:"VAULT_PG_DATABASE" env-default:"vault_db"`
	User     string `env:"VAULT_PG_USER" env-default:"vault"`
	Password string `env:"VAULT_PG_PASSWORD" env-default:"pwd"`
}

func (d VaultDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type JwtConfig struct {
	JwtSecret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	CookieHttpOnly bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
}

type SmtpConfig struct {
	Host     string `env:"SMTP_HOST" env-default:""`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	TLS      bool   `env:"SMTP_TLS" env-default:"true"`
	Username string `env:"SMTP_USERNAME" env-default:""`
	Password string `env:"SMTP_PASSWORD" env-default:""`
	From     string `env:"SMTP_FROM" env-default:""`
}

type Config struct {
	VaultDbConfig VaultDbConfig
	AppConfig     app.AppConfig
	JwtConfig     JwtConfig
	SmtpConfig    SmtpConfig
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

	dbConfig := cfg.VaultDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(ctx, dbConfig)
	if err != nil {
		slog.Error("failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	userRepo := user.NewPostgresUserRepository(pool)
	roleRepo := role.NewPostgresRoleRepository(pool)
	auditRepo := audit.NewPostgresAuditRepository(pool)

	userService := user.NewUserService(userRepo, user.Options{
		EveryoneGroup: loginConfig.EveryoneGroup,
	})
	if err := userService.VerifyInitialization(ctx); err != nil {
		slog.Error("failed to initialize user directory", "error", err)
		os.Exit(-1)
	}

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

	auditService := audit.NewService(auditRepo, auditOptions(cfg.SmtpConfig, loginConfig.AlertEmail)...)

	catalog := report.DefaultCatalog()
	authorizer := buildAuthorizer(catalog)

	flow := loginflow.NewService(loginflow.Deps{
		Directory:     userRepo,
		System:        userService,
		Authenticator: authenticator,
		Sso:           ssoAuth,
		Roles:         role.NewRepositoryRetriever(roleRepo),
		Authorizer:    authorizer,
		Audit:         auditService,
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

// auditOptions enables failed-login alert mail when both SMTP and an alert
// address are configured.
func auditOptions(smtp SmtpConfig, alertEmail string) []audit.Option {
	if smtp.Host == "" || alertEmail == "" {
		return nil
	}
	notifier, err := notification.NewEmailNotifier(notification.SMTPConfig{
		Host:     smtp.Host,
		Port:     smtp.Port,
		TLS:      smtp.TLS,
		Username: smtp.Username,
		Password: smtp.Password,
		From:     smtp.From,
	})
	if err != nil {
		slog.Error("failed to configure smtp notifier, alerting disabled", "error", err)
		return nil
	}
	return []audit.Option{audit.WithFailedLoginAlerts(notifier, alertEmail)}
}

// buildAuthorizer grants every defined function and report view to the
// ADMIN role. Finer-grained grants belong in role administration, which
// this service does not expose yet.
func buildAuthorizer(catalog *report.Catalog) *authz.RoleAuthorizer {
	keys := make([]string, 0, len(authz.AllFunctions()))
	for _, fn := range authz.AllFunctions() {
		keys = append(keys, string(fn))
	}
	for _, r := range catalog.Reports() {
		keys = append(keys, r.ViewKey())
	}
	return authz.NewRoleAuthorizer().Grant("ADMIN", keys...)
}
