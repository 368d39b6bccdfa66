package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tendant/simple-vault/pkg/notification"
)

// Logger records audit entries. Implementations must not silently drop
// entries: a failed write is reported through the returned error.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// Repository defines audit entry storage.
type Repository interface {
	Create(ctx context.Context, entry Entry) error
	FindByPrincipal(ctx context.Context, principal string) ([]Entry, error)
}

// Service persists audit entries through a Repository and optionally mails
// an alert on failed login attempts.
type Service struct {
	repo       Repository
	notifier   notification.Notifier
	alertEmail string
}

// Option configures a Service.
type Option func(*Service)

// WithFailedLoginAlerts mails alertEmail whenever a login attempt fails.
func WithFailedLoginAlerts(notifier notification.Notifier, alertEmail string) Option {
	return func(s *Service) {
		s.notifier = notifier
		s.alertEmail = alertEmail
	}
}

// NewService creates an audit service on top of a repository.
func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: notification.NewNoOpNotifier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Log(ctx context.Context, entry Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		slog.Error("Failed to write audit entry", "action", entry.Action, "principal", entry.Principal, "err", err)
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	if !entry.Success && entry.Action == ActionLogin && s.alertEmail != "" {
		// Alert delivery must never block or fail the request path
		go s.sendAlert(entry)
	}
	return nil
}

func (s *Service) sendAlert(entry Entry) {
	err := s.notifier.Send(notification.NotificationData{
		To:      s.alertEmail,
		Subject: "Failed login attempt",
		Body: fmt.Sprintf("Failed login for %q from %s at %s: %s",
			entry.Principal, entry.IP, entry.Timestamp.Format(time.RFC3339), entry.Message),
	})
	if err != nil {
		slog.Warn("Failed to send login alert", "err", err)
	}
}
