package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"mediquick-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

type LoggerMiddleware struct {
	log *logrus.Logger
}

func NewLoggerMiddleware(log *logrus.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{log: log}
}

// Handle logs every request once it completes.
func (m *LoggerMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		entry := m.log.WithFields(logrus.Fields{
			"request_id": GetRequestIDFromContext(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"latency":    time.Since(start).String(),
			"client_ip":  r.RemoteAddr,
		})

		switch {
		case rec.status >= 500:
			entry.Error("Server error")
		case rec.status >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request processed")
		}
	})
}

// Recover turns a handler panic into a 500 response.
func (m *LoggerMiddleware) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.log.WithFields(logrus.Fields{
					"request_id": GetRequestIDFromContext(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"stack":      string(debug.Stack()),
				}).Errorf("Request panic recovered: %v", err)
				response.InternalServerError(w, "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
