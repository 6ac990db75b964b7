package notify

import (
	"context"
	"log"

	"github.com/educafric/tracking-backend-go/internal/models"
)

// Notifier delivers an emergency notification to one contact
type Notifier interface {
	NotifyContact(ctx context.Context, contact models.EmergencyContact, message string) error
}

// ConsoleNotifier writes notifications to the log. It stands in for the SMS
// gateway in development and in tests.
type ConsoleNotifier struct{}

// NewConsoleNotifier creates a console notifier
func NewConsoleNotifier() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

// NotifyContact logs the notification
func (n *ConsoleNotifier) NotifyContact(_ context.Context, contact models.EmergencyContact, message string) error {
	log.Printf("[Notify] -> %s (%s): %s", contact.Name, contact.Phone, message)
	return nil
}
