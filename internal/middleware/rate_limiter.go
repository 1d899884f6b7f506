package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Stewz00/rpmwiki-auth/internal/apperrors"
	"github.com/Stewz00/rpmwiki-auth/internal/handler"
	"github.com/Stewz00/rpmwiki-auth/internal/ratelimit"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
)

// Admission gates every request on the client's address. The key is the
// socket address unless chi's RealIP runs first.
func Admission(limiter *ratelimit.Limiter, log logrus.FieldLogger) func(http.Handler) http.Handler {
	limit := strconv.Itoa(limiter.Config().Points)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := httprate.KeyByIP(r)
			if err != nil || key == "" {
				key = r.RemoteAddr
			}

			d := limiter.Check(key)
			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				log.WithField("client", key).Warn("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				handler.WriteError(w, apperrors.ErrRateLimited)
				return
			}

			log.WithField("client", key).Debug("request admitted")
			next.ServeHTTP(w, r)
		})
	}
}
