package itemsaver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
	pkgerrors "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/errors"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/grocery"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/logger"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/mailer"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
)

const successMessage = "Item saved and email sent successfully!"

type RequestBody struct {
	ItemName   string `json:"itemName" validate:"required"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	Email      string `json:"email" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

type Handler struct {
	Store   *itemstore.Store
	Sender  mailer.Sender
	CORS    cors.Policy
	Metrics metrics.Recorder
	Logger  zerolog.Logger

	// Now and NewID default to the wall clock and random UUIDs.
	Now   func() time.Time
	NewID func() string
}

func (h *Handler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *Handler) newID() string {
	if h.NewID != nil {
		return h.NewID()
	}
	return uuid.NewString()
}

func parseBody(body string) (RequestBody, error) {
	var reqBody RequestBody
	if err := json.Unmarshal([]byte(body), &reqBody); err != nil {
		return RequestBody{}, pkgerrors.Validation("invalid request body")
	}

	if err := validate.Struct(reqBody); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return RequestBody{}, pkgerrors.Validation("missing required field: " + fieldErrors[0].Field())
		}
		return RequestBody{}, pkgerrors.Internal(err)
	}

	return reqBody, nil
}

// Handle stores one item and emails its owner a confirmation. The item stays
// stored when the confirmation cannot be sent.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = logger.ForRequest(ctx, h.Logger, "item-saver", request.RequestContext.RequestID)
	defer h.Metrics.Flush()

	reqBody, err := parseBody(request.Body)
	if err != nil {
		return pkgerrors.Respond(ctx, h.CORS, err)
	}

	item := grocery.Item{
		ID:         h.newID(),
		OwnerEmail: reqBody.Email,
		Name:       reqBody.ItemName,
		ExpiryDate: reqBody.ExpiryDate,
		CreatedAt:  h.now().UTC().Format(time.RFC3339),
	}

	if err := h.Store.Put(ctx, item); err != nil {
		return pkgerrors.Respond(ctx, h.CORS, pkgerrors.Upstream("item store", err))
	}
	h.Metrics.Incr("items.saved")

	log := zerolog.Ctx(ctx).With().Str("item_id", item.ID).Logger()

	if err := h.Sender.Send(ctx, mailer.Confirmation(item)); err != nil {
		h.Metrics.Incr("emails.failed")
		log.Warn().Msg("item stored without confirmation email")
		return pkgerrors.Respond(ctx, h.CORS, pkgerrors.Upstream("notification service", err))
	}
	h.Metrics.Incr("emails.sent")
	log.Info().Msg("item saved")

	responseJSON, err := json.Marshal(successMessage)
	if err != nil {
		return pkgerrors.Respond(ctx, h.CORS, pkgerrors.Internal(err))
	}

	return events.APIGatewayProxyResponse{
		Body:       string(responseJSON),
		Headers:    h.CORS.Headers(),
		StatusCode: http.StatusOK,
	}, nil
}
