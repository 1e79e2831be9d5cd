package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// requestIDMiddleware tags every request with a generated id and logs it.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)
		log.Info("incoming request", "method", r.Method, "url", r.URL.String(), "request_id", requestID)
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware counts requests and observes their duration.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.Metrics.IncHTTPRequests()
		next.ServeHTTP(w, r)
		s.Metrics.ObserveRequestDuration(time.Since(start).Seconds())
	})
}
