package itemlister

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/dynamomapper"
	pkgerrors "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/errors"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/itemstore"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/logger"
	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/metrics"
)

type Handler struct {
	Store   *itemstore.Store
	CORS    cors.Policy
	Metrics metrics.Recorder
	Logger  zerolog.Logger
}

// Handle returns every stored item, across all owners, as a JSON array.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = logger.ForRequest(ctx, h.Logger, "item-lister", request.RequestContext.RequestID)
	defer h.Metrics.Flush()

	records, err := h.Store.ScanAll(ctx)
	if err != nil {
		return pkgerrors.Respond(ctx, h.CORS, pkgerrors.Upstream("item store", err))
	}

	responseJSON, err := json.Marshal(dynamomapper.SimplifyDynamoDBItems(records))
	if err != nil {
		return pkgerrors.Respond(ctx, h.CORS, pkgerrors.Internal(err))
	}

	h.Metrics.Count("items.listed", int64(len(records)))
	zerolog.Ctx(ctx).Debug().Int("count", len(records)).Msg("items listed")

	return events.APIGatewayProxyResponse{
		Body:       string(responseJSON),
		Headers:    h.CORS.Headers(),
		StatusCode: http.StatusOK,
	}, nil
}
