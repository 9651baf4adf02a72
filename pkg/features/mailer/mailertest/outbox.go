// Package mailertest provides a Sender that keeps messages in memory.
package mailertest

import (
	"context"
	"sync"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/mailer"
)

// Outbox stores every message it accepts. When Err is set, the FailAt-th
// attempt (1-based) returns it, or every attempt does if FailAt is zero.
type Outbox struct {
	mu       sync.Mutex
	Messages []mailer.Message
	Attempts int
	FailAt   int
	Err      error
}

func (o *Outbox) Send(ctx context.Context, message mailer.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Attempts++
	if o.Err != nil && (o.FailAt == 0 || o.Attempts == o.FailAt) {
		return o.Err
	}
	o.Messages = append(o.Messages, message)

	return nil
}
