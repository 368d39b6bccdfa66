package config

import "time"

// LoginConfig contains login behavior settings.
// Fields have no env tags - populate manually or use NewLoginConfigFromEnv() for standard env var names.
type LoginConfig struct {
	// EveryoneGroup is the name of the default group every user belongs to
	EveryoneGroup string

	// SessionTokenExpiration is how long an issued session token stays valid
	SessionTokenExpiration time.Duration

	// RateLimitCapacity is the burst size of the per-IP login rate limiter
	RateLimitCapacity int

	// RateLimitPerSecond is the sustained login attempts allowed per second per IP
	RateLimitPerSecond float64

	// AlertEmail receives failed-login alert mail, empty disables alerting
	AlertEmail string
}

// DefaultLoginConfig returns a LoginConfig with sensible defaults
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{
		EveryoneGroup:          "Everyone",
		SessionTokenExpiration: 8 * time.Hour,
		RateLimitCapacity:      10,
		RateLimitPerSecond:     1,
		AlertEmail:             "",
	}
}

// NewLoginConfigFromEnv loads LoginConfig from standard environment variables.
// This is an optional convenience function - you can also populate the struct manually.
//
// Environment variables:
//   - LOGIN_EVERYONE_GROUP: Default group name (default: "Everyone")
//   - LOGIN_SESSION_TOKEN_EXPIRATION: Session token validity (default: "8h")
//   - LOGIN_RATE_LIMIT_CAPACITY: Login rate limit burst size (default: 10)
//   - LOGIN_RATE_LIMIT_PER_SECOND: Sustained login attempts per second (default: 1)
//   - LOGIN_ALERT_EMAIL: Recipient of failed-login alerts (default: "")
func NewLoginConfigFromEnv() LoginConfig {
	return LoginConfig{
		EveryoneGroup:          GetEnvOrDefault("LOGIN_EVERYONE_GROUP", "Everyone"),
		SessionTokenExpiration: GetEnvDuration("LOGIN_SESSION_TOKEN_EXPIRATION", 8*time.Hour),
		RateLimitCapacity:      GetEnvInt("LOGIN_RATE_LIMIT_CAPACITY", 10),
		RateLimitPerSecond:     float64(GetEnvInt("LOGIN_RATE_LIMIT_PER_SECOND", 1)),
		AlertEmail:             GetEnvOrDefault("LOGIN_ALERT_EMAIL", ""),
	}
}
