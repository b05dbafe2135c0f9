package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/autocrm/leads-api/internal/metrics"
)

const (
	// HeaderCorrelationID carries the request correlation id in and out.
	HeaderCorrelationID = "x-correlation-id"

	// HeaderLatency reports the server-side handling time in milliseconds.
	HeaderLatency = "x-latency-ms"
)

type statusWriter struct {
	http.ResponseWriter
	status      int
	start       time.Time
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.Header().Set(HeaderLatency, strconv.FormatInt(time.Since(w.start).Milliseconds(), 10))
	w.ResponseWriter.WriteHeader(status)
	w.wroteHeader = true
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Observability attaches a correlation id and a contextual logger to every
// request, logs the completion line, and records the latency histogram.
func Observability(log zerolog.Logger, provider metrics.Provider) mux.MiddlewareFunc {
	if provider == nil {
		provider = &metrics.NoopProvider{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			corrID := r.Header.Get(HeaderCorrelationID)
			if corrID == "" {
				corrID = uuid.NewString()
			}

			logger := log.With().Str("correlation_id", corrID).Logger()
			ctx := logger.WithContext(r.Context())

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK, start: start}
			sw.Header().Set(HeaderCorrelationID, corrID)

			next.ServeHTTP(sw, r.WithContext(ctx))

			latency := time.Since(start).Milliseconds()
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.status).
				Int64("latency_ms", latency).
				Msg("request completed")

			_ = provider.Histogram("http.request.latency_ms", float64(latency), []string{
				"method:" + r.Method,
				"status:" + strconv.Itoa(sw.status),
			})
		})
	}
}
