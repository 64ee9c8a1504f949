package middlewares

import (
	"carecapture-service/internal/pkg/exceptions"
	"carecapture-service/internal/pkg/utils"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per client token bucket. A client that runs out of tokens
// is blocked for blockTime before it is allowed back in. Expired blocks and
// buckets idle long enough to have refilled are pruned as requests arrive.
type RateLimiter struct {
	limiters  map[string]*clientLimiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	blockTime time.Duration
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
	log       *zap.Logger
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requestsPerSecond float64, burst int, blockTime time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		blocked:   make(map[string]time.Time),
		limit:     rate.Limit(requestsPerSecond),
		burst:     burst,
		blockTime: blockTime,
		idleTTL:   idleTTL(requestsPerSecond, burst, blockTime),
		now:       time.Now,
		log:       logger,
	}
}

// idleTTL is how long a bucket must sit unused before dropping it is the same
// as handing out a full one. Zero disables bucket eviction.
func idleTTL(requestsPerSecond float64, burst int, blockTime time.Duration) time.Duration {
	if requestsPerSecond <= 0 || math.IsInf(requestsPerSecond, 0) || math.IsNaN(requestsPerSecond) {
		return 0
	}
	refill := time.Duration(float64(burst) / requestsPerSecond * float64(time.Second))
	return blockTime + refill
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip := clientIP(req)

		r.mu.Lock()
		now := r.now()
		r.sweep(now)

		if blockedUntil, found := r.blocked[ip]; found {
			if now.Before(blockedUntil) {
				r.mu.Unlock()
				utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil, ip))
				return
			}

			delete(r.blocked, ip)
		}

		client, exists := r.limiters[ip]
		if !exists {
			client = &clientLimiter{limiter: rate.NewLimiter(r.limit, r.burst)}
			r.limiters[ip] = client
		}
		client.lastSeen = now
		allowed := client.limiter.AllowN(now, 1)
		if !allowed {
			r.blocked[ip] = now.Add(r.blockTime)
		}

		r.mu.Unlock()

		if !allowed {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil, ip))
			return
		}

		next.ServeHTTP(w, req)
	})
}

// sweep runs at most once per blockTime. Callers hold mu.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.blockTime {
		return
	}
	r.lastSweep = now

	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
	if r.idleTTL == 0 {
		return
	}
	for ip, client := range r.limiters {
		if _, isBlocked := r.blocked[ip]; isBlocked {
			continue
		}
		if now.Sub(client.lastSeen) >= r.idleTTL {
			delete(r.limiters, ip)
		}
	}
}

func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
