package middleware

import (
	"net/http"
	"time"

	"muse/pkg/utils"

	"github.com/go-chi/httprate"
)

// CredentialRateLimit throttles credential submissions per client IP.
// A non-positive limit disables it.
func CredentialRateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.WriteError(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.", nil)
		}),
	)
}
