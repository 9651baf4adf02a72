package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/Slimo300/Grocery-Reminder-Serverless-Go/pkg/features/cors"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error carries a client safe message next to the underlying cause.
// Only Message ever reaches a response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Validation marks a problem with the caller's input. The message is shown as is.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Upstream marks a failed call to a managed service such as the item store or the mail service.
func Upstream(service string, err error) error {
	return &Error{Kind: KindUpstream, Message: service + " request failed", Err: err}
}

func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf reports the kind of err, treating unclassified errors as internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func ErrorResponse(message string, code int, policy cors.Policy) (events.APIGatewayProxyResponse, error) {

	responseJSON, _ := json.Marshal(map[string]string{
		"error": message,
	})

	return events.APIGatewayProxyResponse{
		StatusCode: code,
		Headers:    policy.Headers(),
		Body:       string(responseJSON),
	}, nil
}

// Respond logs err with full detail and answers with a redacted error body.
func Respond(ctx context.Context, policy cors.Policy, err error) (events.APIGatewayProxyResponse, error) {
	var e *Error
	if !stderrors.As(err, &e) {
		e = Internal(err).(*Error)
	}

	logger := zerolog.Ctx(ctx)
	if e.Kind == KindValidation {
		logger.Info().Str("kind", e.Kind.String()).Msg(e.Message)
	} else {
		logger.Error().Err(e.Err).Str("kind", e.Kind.String()).Msg(e.Message)
	}

	return ErrorResponse(e.Message, e.StatusCode(), policy)
}
