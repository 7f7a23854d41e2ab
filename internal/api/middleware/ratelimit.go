package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/rohits-web03/minitracker/internal/utils"
)

// RateLimit applies a global token bucket. Requests over the limit receive
// 429. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(rps), burst)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				utils.JSONResponse(w, http.StatusTooManyRequests, utils.Payload{
					Success: false,
					Message: "Too many requests",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
