package authn

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/tendant/simple-vault/pkg/user"
)

const (
	totpPeriod = 30
	totpSkew   = 1
)

// TotpSecretStore resolves the TOTP secret enrolled for an active username.
// An empty secret means two-step authentication is not enabled for the user.
type TotpSecretStore interface {
	FindTotpSecret(ctx context.Context, username string) (string, error)
}

// TwoStepAuthenticator decorates another authenticator with a TOTP second
// factor. When the user has a secret enrolled and only the first credential
// is supplied, a successful first step yields StatusTwoStepRequired; the
// caller retries with the passcode appended to the credential sequence.
type TwoStepAuthenticator struct {
	next    Authenticator
	secrets TotpSecretStore
}

// NewTwoStepAuthenticator wraps next with TOTP verification.
func NewTwoStepAuthenticator(next Authenticator, secrets TotpSecretStore) *TwoStepAuthenticator {
	return &TwoStepAuthenticator{
		next:    next,
		secrets: secrets,
	}
}

func (a *TwoStepAuthenticator) Authenticate(ctx context.Context, principal string, credentials []string) Status {
	status := a.next.Authenticate(ctx, principal, credentials)
	if status != StatusSuccess {
		return status
	}

	secret, err := a.secrets.FindTotpSecret(ctx, principal)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return status
		}
		slog.Error("Failed to look up totp secret", "err", err)
		return StatusFailure
	}
	if secret == "" {
		return status
	}

	if len(credentials) < 2 {
		return StatusTwoStepRequired
	}

	valid, err := totp.ValidateCustom(credentials[1], secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		slog.Error("Failed to validate totp passcode", "err", err)
		return StatusFailure
	}
	if !valid {
		return StatusFailure
	}
	return StatusSuccess
}

// GenerateTotpSecret enrolls a new TOTP secret for the given account name.
func GenerateTotpSecret(issuer, accountName string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
	})
	if err != nil {
		return "", err
	}
	return key.Secret(), nil
}

// GenerateTotpPasscode computes the current passcode for a secret. Used by
// tests and enrollment verification.
func GenerateTotpPasscode(secret string) (string, error) {
	return totp.GenerateCodeCustom(secret, time.Now().UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
}
