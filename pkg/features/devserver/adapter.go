// Package devserver serves the Lambda handlers over plain HTTP for local runs,
// translating requests the way an API Gateway proxy integration does.
package devserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type ProxyHandler func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

type ScheduledHandler func(context.Context, events.CloudWatchEvent) (events.APIGatewayProxyResponse, error)

// gatewayError is what API Gateway answers when the integration itself fails.
const gatewayError = `{"message": "Internal server error"}`

func proxyRequest(r *http.Request, body []byte) events.APIGatewayProxyRequest {
	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}

	query := r.URL.Query()
	params := make(map[string]string, len(query))
	for name := range query {
		params[name] = query.Get(name)
	}

	return events.APIGatewayProxyRequest{
		Resource:                        r.URL.Path,
		Path:                            r.URL.Path,
		HTTPMethod:                      r.Method,
		Headers:                         headers,
		MultiValueHeaders:               r.Header,
		QueryStringParameters:           params,
		MultiValueQueryStringParameters: query,
		Body:                            string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:  middleware.GetReqID(r.Context()),
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Stage:      "local",
		},
	}
}

// Adapt turns a proxy integration handler into an http.HandlerFunc.
func Adapt(handler ProxyHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "reading request body failed", http.StatusBadRequest)
			return
		}

		response, err := handler(r.Context(), proxyRequest(r, body))
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("handler returned an error")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, gatewayError)
			return
		}

		writeResponse(w, response)
	}
}

func writeResponse(w http.ResponseWriter, response events.APIGatewayProxyResponse) {
	for name, value := range response.Headers {
		w.Header().Set(name, value)
	}
	for name, values := range response.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}

	body := []byte(response.Body)
	if response.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(response.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = io.WriteString(w, gatewayError)
			return
		}
		body = decoded
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}

	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Scheduled lets an HTTP call stand in for the daily timer. Each call builds a
// fresh scheduled event at the current time.
func Scheduled(handler ScheduledHandler, now func() time.Time) ProxyHandler {
	return func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler(ctx, events.CloudWatchEvent{
			Version:    "0",
			ID:         request.RequestContext.RequestID,
			DetailType: "Scheduled Event",
			Source:     "aws.events",
			Time:       now().UTC(),
			Detail:     json.RawMessage(`{}`),
		})
	}
}
