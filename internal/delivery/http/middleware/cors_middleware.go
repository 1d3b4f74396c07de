package middleware

import (
	"net/http"
	"strings"
)

var (
	corsMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	corsHeaders = []string{"Content-Type", "Authorization", HeaderXRequestID}
)

// CORSMiddleware allows any origin; the API is bearer-token only and sets
// no cookies.
type CORSMiddleware struct {
	allowMethods string
	allowHeaders string
}

func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{
		allowMethods: strings.Join(corsMethods, ", "),
		allowHeaders: strings.Join(corsHeaders, ", "),
	}
}

// Handle answers preflight requests itself.
func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", m.allowMethods)
		h.Set("Access-Control-Allow-Headers", m.allowHeaders)
		h.Set("Access-Control-Expose-Headers", HeaderXRequestID)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
