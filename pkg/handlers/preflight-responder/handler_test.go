package preflightresponder_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
	preflightresponder "github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/handlers/preflight-responder"
)

func TestHandler(t *testing.T) {
	restricted := cors.Permissive()
	restricted.AllowOrigin = "http://localhost:3000"

	testCases := []struct {
		name            string
		policy          cors.Policy
		request         events.APIGatewayProxyRequest
		expectedHeaders map[string]string
	}{
		{
			name:    "permissive",
			policy:  cors.Permissive(),
			request: events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions},
			expectedHeaders: map[string]string{
				"Content-Type":                 "application/json",
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Allow-Methods": "OPTIONS,POST",
			},
		},
		{
			name:   "single origin ignores request",
			policy: restricted,
			request: events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodOptions,
				Headers:    map[string]string{"Origin": "https://evil.example.com"},
				Body:       "garbage",
			},
			expectedHeaders: map[string]string{
				"Content-Type":                 "application/json",
				"Access-Control-Allow-Origin":  "http://localhost:3000",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Allow-Methods": "OPTIONS,POST",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := preflightresponder.Handler{CORS: testCase.policy}

			response, err := handler.Handle(context.Background(), testCase.request)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, response.StatusCode)
			assert.JSONEq(t, `{"message": "CORS preflight successful"}`, response.Body)
			assert.Equal(t, testCase.expectedHeaders, response.Headers)
		})
	}
}
