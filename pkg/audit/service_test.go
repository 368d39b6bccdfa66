package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-vault/pkg/notification"
)

type failingRepository struct{}

func (failingRepository) Create(ctx context.Context, entry Entry) error {
	return errors.New("disk full")
}

func (failingRepository) FindByPrincipal(ctx context.Context, principal string) ([]Entry, error) {
	return nil, nil
}

// recordingNotifier captures sent notifications for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.NotificationData
	done chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 1)}
}

func (n *recordingNotifier) Send(data notification.NotificationData) error {
	n.mu.Lock()
	n.sent = append(n.sent, data)
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}

func (n *recordingNotifier) all() []notification.NotificationData {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.NotificationData(nil), n.sent...)
}

func TestServiceLog(t *testing.T) {
	ctx := context.Background()

	t.Run("fills id and timestamp", func(t *testing.T) {
		repo := NewInMemoryAuditRepository()
		service := NewService(repo)

		err := service.Log(ctx, Entry{
			Principal: "alice",
			IP:        "10.0.0.1",
			Action:    ActionLogin,
			Success:   true,
		})
		require.NoError(t, err)

		entries := repo.Entries()
		require.Len(t, entries, 1)
		assert.NotEqual(t, entries[0].ID.String(), "00000000-0000-0000-0000-000000000000")
		assert.False(t, entries[0].Timestamp.IsZero())
	})

	t.Run("write failure is reported", func(t *testing.T) {
		service := NewService(failingRepository{})

		err := service.Log(ctx, Entry{Action: ActionLogin})
		assert.Error(t, err)
	})

	t.Run("find by principal", func(t *testing.T) {
		repo := NewInMemoryAuditRepository()
		service := NewService(repo)

		require.NoError(t, service.Log(ctx, Entry{Principal: "alice", Action: ActionLogin, Success: true}))
		require.NoError(t, service.Log(ctx, Entry{Principal: "bob", Action: ActionLogin, Success: false}))
		require.NoError(t, service.Log(ctx, Entry{Principal: "alice", Action: ActionLogout, Success: true}))

		entries, err := repo.FindByPrincipal(ctx, "alice")
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestFailedLoginAlerts(t *testing.T) {
	ctx := context.Background()

	t.Run("failed login triggers alert", func(t *testing.T) {
		notifier := newRecordingNotifier()
		service := NewService(NewInMemoryAuditRepository(),
			WithFailedLoginAlerts(notifier, "security@example.com"))

		require.NoError(t, service.Log(ctx, Entry{
			Principal: "mallory",
			IP:        "203.0.113.9",
			Action:    ActionLogin,
			Success:   false,
			Message:   "authentication failed",
		}))

		select {
		case <-notifier.done:
		case <-time.After(time.Second):
			t.Fatal("alert was never sent")
		}

		sent := notifier.all()
		require.Len(t, sent, 1)
		assert.Equal(t, "security@example.com", sent[0].To)
		assert.Contains(t, sent[0].Body, "mallory")
	})

	t.Run("successful login does not alert", func(t *testing.T) {
		notifier := newRecordingNotifier()
		service := NewService(NewInMemoryAuditRepository(),
			WithFailedLoginAlerts(notifier, "security@example.com"))

		require.NoError(t, service.Log(ctx, Entry{Action: ActionLogin, Success: true}))

		select {
		case <-notifier.done:
			t.Fatal("unexpected alert")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("logout never alerts", func(t *testing.T) {
		notifier := newRecordingNotifier()
		service := NewService(NewInMemoryAuditRepository(),
			WithFailedLoginAlerts(notifier, "security@example.com"))

		require.NoError(t, service.Log(ctx, Entry{Action: ActionLogout, Success: false}))

		select {
		case <-notifier.done:
			t.Fatal("unexpected alert")
		case <-time.After(50 * time.Millisecond):
		}
	})
}
