package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

type ctxKey int

const loggerKey ctxKey = iota

// requestLogger returns the logger of the request, tagged with its id.
func requestLogger(r *http.Request, fallback *zap.Logger) *zap.Logger {
	if l, ok := r.Context().Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// withRequestID makes sure every request carries an id. A client supplied
// id is kept, so calls can be traced across services.
func withRequestID(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.New().String()
			}
			w.Header().Set(requestIDHeader, id)

			logger := log.With(
				zap.String("request_id", id),
				zap.String("path", r.URL.Path),
			)
			ctx := context.WithValue(r.Context(), loggerKey, logger)

			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(ctx))
			logger.Info("Handled request",
				zap.Int("status", rw.code),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// metrics collects request durations of every route.
type metrics struct {
	duration *prometheus.HistogramVec
	cache    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of the HTTP requests by route.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 10},
		}, []string{"route"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proposal_cache",
			Help: "Settled proposal cache lookups.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.duration, m.cache)
	return m
}

func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		t := prometheus.NewTimer(m.duration.WithLabelValues(route))
		defer t.ObserveDuration()
		next.ServeHTTP(w, r)
	})
}
