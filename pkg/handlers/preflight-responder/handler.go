package preflightresponder

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
)

const body = `{"message":"CORS preflight successful"}`

type Handler struct {
	CORS cors.Policy
}

// Handle answers browser preflight requests. It never fails.
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{
		Body:       body,
		Headers:    h.CORS.Preflight(),
		StatusCode: http.StatusOK,
	}, nil
}
