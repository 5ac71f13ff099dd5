package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/keyfob-dev/keyfob/internal/util/rest"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// visitor tracks the limiter for one client address.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP request rate to the handlers it wraps. Idle
// entries age out so the visitor table cannot grow unbounded.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing perSecond requests per client IP.
func NewRateLimiter(perSecond int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    perSecond * 2,
	}

	go rl.cleanup()

	return rl
}

func (rl *RateLimiter) getLimiter(addr string) *rate.Limiter {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[host]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[host] = v
	}
	v.lastSeen = time.Now()

	return v.limiter
}

func (rl *RateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for host, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, host)
			}
		}
		rl.mu.Unlock()
	}
}

// Limit wraps a handler with the per-IP rate check.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.getLimiter(r.RemoteAddr).Allow() {
			log.Debug().Str("remote_addr", r.RemoteAddr).Msg("rate limit exceeded")
			rest.WriteError(http.StatusTooManyRequests, w, r, "Too many requests")
			return
		}

		next(w, r)
	}
}
