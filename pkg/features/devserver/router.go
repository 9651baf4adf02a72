package devserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Routes struct {
	ListItems    ProxyHandler
	SaveItem     ProxyHandler
	Preflight    ProxyHandler
	RunReminders ProxyHandler
	Logger       zerolog.Logger
}

// NewRouter mirrors the deployed API: GET, POST and OPTIONS on /items plus a
// manual trigger for the expiry sweep.
func NewRouter(routes Routes) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(routes.Logger))

	r.Get("/items", Adapt(routes.ListItems))
	r.Post("/items", Adapt(routes.SaveItem))
	r.Options("/items", Adapt(routes.Preflight))
	r.Post("/reminders/run", Adapt(routes.RunReminders))

	return r
}

func loggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := logger.With().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Logger()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(reqLogger.WithContext(r.Context())))

			reqLogger.Debug().
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}
