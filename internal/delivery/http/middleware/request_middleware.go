package middleware

import (
	"net/http"
	"strconv"
	"time"

	"graphene-trace-portal/internal/infrastructure/metrics"
	"graphene-trace-portal/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type RequestMiddleware struct {
	log *logrus.Logger
}

func NewRequestMiddleware(log *logrus.Logger) *RequestMiddleware {
	return &RequestMiddleware{log: log}
}

// Handle tags the request with a correlation id, then logs and measures it
func (m *RequestMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := service.WithCorrelationID(r.Context(), requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		route := routeTemplate(r)
		elapsed := time.Since(start)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())

		m.log.WithFields(logrus.Fields{
			"method":         r.Method,
			"route":          route,
			"status":         rec.status,
			"duration_ms":    elapsed.Milliseconds(),
			"correlation_id": requestID,
		}).Debug("HTTP request")
	})
}

// routeTemplate keeps metric labels bounded by using the matched route pattern
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
