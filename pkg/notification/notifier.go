package notification

// NotificationData carries one message to deliver.
type NotificationData struct {
	To      string // Recipient identifier (e.g., email address)
	Subject string // Subject for notifications like email
	Body    string // The content or message to send
}

// Notifier delivers notifications to a recipient.
type Notifier interface {
	Send(notification NotificationData) error
}

// NoOpNotifier discards every notification. Use this when alerting is not
// configured.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a notifier that drops all messages.
func NewNoOpNotifier() Notifier {
	return &NoOpNotifier{}
}

func (n *NoOpNotifier) Send(notification NotificationData) error {
	return nil
}
