package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Configure builds the root logger. Unknown levels fall back to info and
// format "console" switches to a human readable writer for local runs.
func Configure(level, format string) zerolog.Logger {
	return New(os.Stdout, level, format)
}

func New(out io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// ForRequest derives a logger tagged with the invocation's request id and
// stores it in the returned context for zerolog.Ctx.
func ForRequest(ctx context.Context, base zerolog.Logger, handler, requestID string) context.Context {
	if requestID == "" {
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			requestID = lc.AwsRequestID
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	l := base.With().
		Str("handler", handler).
		Str("request_id", requestID).
		Logger()

	return l.WithContext(ctx)
}
