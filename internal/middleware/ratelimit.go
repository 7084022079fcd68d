package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
	"github.com/iamyashsharma43/SENTIFY/internal/utils/ratelimit"
)

// RateLimit rejects requests once the client IP has used up its budget for
// category. Rejected requests get 429 with a Retry-After in whole seconds.
// /health and /version are never limited.
func RateLimit(store *ratelimit.Store, category string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == constants.HealthPath || r.URL.Path == constants.VersionPath {
				next.ServeHTTP(w, r)
				return
			}

			client := clientIP(r)
			limiter := store.GetLimiter(client, category)
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			wait := limiter.RetryAfter()
			log.Warn().
				Str("client_ip", client).
				Str("category", category).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("retry_after", wait).
				Msg("Rate limit exceeded")

			w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds(wait)))
			utils.TooManyRequests(w)
		})
	}
}

// retryAfterSeconds rounds wait up to whole seconds, never below one.
func retryAfterSeconds(wait time.Duration) int {
	secs := int((wait + time.Second - 1) / time.Second)
	return max(secs, 1)
}

// clientIP is the host part of r.RemoteAddr. Forwarding headers are only
// honored when chimiddleware.RealIP has already rewritten RemoteAddr, which
// the router does behind a trusted proxy.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
