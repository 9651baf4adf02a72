package expirynotifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/grocery"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/logger"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/mailer"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
)

type Handler struct {
	Store   *itemstore.Store
	Sender  mailer.Sender
	Metrics metrics.Recorder
	Logger  zerolog.Logger
	Now     func() time.Time
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Handle sends one reminder for every item expiring tomorrow (UTC). The event
// payload is ignored. Any scan or send failure aborts the run, reminders already
// sent stay sent and nothing tracks them, so a rerun sends them again.
func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (events.APIGatewayProxyResponse, error) {
	ctx = logger.ForRequest(ctx, h.Logger, "expiry-notifier", event.ID)
	defer h.Metrics.Flush()

	log := zerolog.Ctx(ctx)
	tomorrow := grocery.Tomorrow(h.now())

	items, err := h.Store.Items(ctx, itemstore.WithProjection("userEmail", "itemName", "expiryDate"))
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("expirynotifier: reading items failed: %w", err)
	}

	sent := 0
	for _, item := range items {
		if !item.HasExpiry() {
			continue
		}

		due, err := item.ExpiresOn(tomorrow)
		if err != nil {
			h.Metrics.Incr("reminders.malformed")
			log.Warn().Err(err).
				Str("item_name", item.Name).
				Str("owner", item.OwnerEmail).
				Msg("skipping item with malformed expiry date")
			continue
		}
		if !due {
			continue
		}

		if err := h.Sender.Send(ctx, mailer.ExpiryReminder(item)); err != nil {
			h.Metrics.Count("reminders.sent", int64(sent))
			return events.APIGatewayProxyResponse{}, fmt.Errorf("expirynotifier: reminder for %q failed after %d sent: %w", item.Name, sent, err)
		}
		sent++
	}

	h.Metrics.Count("reminders.sent", int64(sent))
	log.Info().
		Int("scanned", len(items)).
		Int("sent", sent).
		Str("tomorrow", tomorrow.Format(grocery.DateLayout)).
		Msg("expiry sweep finished")

	responseJSON, err := json.Marshal(fmt.Sprintf("%d reminder(s) sent.", sent))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		Body:       string(responseJSON),
		StatusCode: http.StatusOK,
	}, nil
}
