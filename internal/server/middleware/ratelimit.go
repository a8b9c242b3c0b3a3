package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/agentstation/locallift/internal/server/response"
)

// RateLimiter allows a fixed number of requests per client per window.
// Counters live in a go-cache so idle clients expire on their own.
type RateLimiter struct {
	visitors *gocache.Cache
	limit    int
	window   time.Duration
	logger   *zerolog.Logger
}

// NewRateLimiter allows limit requests per minute per client address.
func NewRateLimiter(limit int, logger *zerolog.Logger) *RateLimiter {
	return newRateLimiter(limit, time.Minute, logger)
}

func newRateLimiter(limit int, window time.Duration, logger *zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		visitors: gocache.New(window, 5*window),
		limit:    limit,
		window:   window,
		logger:   logger,
	}
}

// Allow counts a request from client and reports whether it is within the limit.
func (rl *RateLimiter) Allow(client string) bool {
	if err := rl.visitors.Add(client, 1, rl.window); err == nil {
		return true
	}
	n, err := rl.visitors.IncrementInt(client, 1)
	if err != nil {
		// expired between Add and IncrementInt
		rl.visitors.Set(client, 1, rl.window)
		return true
	}
	return n <= rl.limit
}

// RateLimit rejects requests over the limiter's budget with 429.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientAddr(r)
			if !rl.Allow(client) {
				rl.logger.Warn().Str("client", client).Str("path", r.URL.Path).Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(rl.window.Seconds()))))
				response.JSON(w, http.StatusTooManyRequests, response.Fail("RATE_LIMITED",
					"Rate limit exceeded", "Too many requests, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr is the first X-Forwarded-For hop, or the remote host.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
