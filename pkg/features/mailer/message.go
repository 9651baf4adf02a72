package mailer

import (
	"context"
	"fmt"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/grocery"
)

// Message is a plain text notification for one recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message or reports why it could not.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// Confirmation is sent right after an item is saved.
func Confirmation(item grocery.Item) Message {
	return Message{
		To:      item.OwnerEmail,
		Subject: fmt.Sprintf("Reminder: %s expires on %s", item.Name, item.ExpiryDate),
		Body: fmt.Sprintf("Hello,\n\nYou added \"%s\" to your grocery list, which expires on %s.\n\n- Smart Grocery Reminder App",
			item.Name, item.ExpiryDate),
	}
}

// ExpiryReminder is sent the day before an item expires.
func ExpiryReminder(item grocery.Item) Message {
	return Message{
		To:      item.OwnerEmail,
		Subject: fmt.Sprintf("Expiry Reminder: %s expires tomorrow!", item.Name),
		Body: fmt.Sprintf("Hi,\n\nThis is a reminder that your item \"%s\" is expiring on %s.\n\n— Smart Grocery Reminder App",
			item.Name, item.ExpiryDate),
	}
}
