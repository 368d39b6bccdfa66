package config

// SsoConfig contains single-sign-on settings.
// Fields have no env tags - populate manually or use NewSsoConfigFromEnv() for standard env var names.
type SsoConfig struct {
	// Enabled controls whether logins must come through the external SSO layer
	Enabled bool

	// AssertionSecret is the shared secret used to verify SSO assertion tokens
	AssertionSecret string

	// Issuer is the expected issuer of SSO assertion tokens
	Issuer string

	// BypassUsernames lists principals allowed to authenticate locally even when SSO is enabled
	BypassUsernames []string

	// LogoutURL is the external logout endpoint shown to clients, empty if none
	LogoutURL string
}

// DefaultSsoConfig returns an SsoConfig with SSO disabled
func DefaultSsoConfig() SsoConfig {
	return SsoConfig{
		Enabled:         false,
		AssertionSecret: "",
		Issuer:          "simple-vault-sso",
		BypassUsernames: nil,
		LogoutURL:       "",
	}
}

// NewSsoConfigFromEnv loads SsoConfig from standard environment variables.
// This is an optional convenience function - you can also populate the struct manually.
//
// Environment variables:
//   - SSO_ENABLED: Require SSO for logins (default: false)
//   - SSO_ASSERTION_SECRET: Shared secret for assertion verification (default: "")
//   - SSO_ISSUER: Expected assertion issuer (default: "simple-vault-sso")
//   - SSO_BYPASS_USERNAMES: Comma-separated bypass allow list (default: empty)
//   - SSO_LOGOUT_URL: External logout URL (default: "")
func NewSsoConfigFromEnv() SsoConfig {
	return SsoConfig{
		Enabled:         GetEnvBool("SSO_ENABLED", false),
		AssertionSecret: GetEnvOrDefault("SSO_ASSERTION_SECRET", ""),
		Issuer:          GetEnvOrDefault("SSO_ISSUER", "simple-vault-sso"),
		BypassUsernames: GetEnvSlice("SSO_BYPASS_USERNAMES", nil),
		LogoutURL:       GetEnvOrDefault("SSO_LOGOUT_URL", ""),
	}
}
