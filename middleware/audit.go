package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/blogem/sign2pay-oauth/reqctx"
)

// RequestUIDHeader carries the request uid back to the client
const RequestUIDHeader = "X-Request-UID"

// RequestMetadata tags every request with a uid and the client address so
// log lines and audit events of one request can be correlated
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := uuid.NewString()
		w.Header().Set(RequestUIDHeader, uid)

		ctx := reqctx.SetRequestUID(r.Context(), uid)
		ctx = reqctx.SetClient(ctx, getIPAddress(r), r.UserAgent())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first
func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header (proxy/load balancer)
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// Take first IP if multiple
		ip, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(ip)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
