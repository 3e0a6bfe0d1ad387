package middleware

import (
	"net/http"
	"strconv"
	"time"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/service/ratelimit"

	"github.com/pkg/errors"
)

// RateLimit throttles the wrapped handler with a fixed window per client IP.
// The operation string keeps separately limited endpoints from sharing a
// bucket.
func RateLimit(limiter ratelimit.Limiter, operation string, limit int, window time.Duration) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			result := limiter.Check(operation+":"+c.ClientIP(), limit, window)

			c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				return c.RespondError(web.NewRequestError(errors.New("too many requests"), http.StatusTooManyRequests))
			}

			return handler(c)
		}

		return h
	}

	return m
}
