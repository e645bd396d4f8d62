package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"gadget-shop-be/internal/auth"
	"gadget-shop-be/internal/logger"
	"gadget-shop-be/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Rate limit tiers
const (
	// Login and registration
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	// Frontend-heavy clients
	limitFrontend = rate.Limit(20)
	burstFrontend = 40
)

const visitorIdleTTL = 3 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per identity and tier. It runs ahead
// of RequireAuth, so it verifies the bearer token itself to key
// authenticated callers by email.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	tokens   TokenVerifier
	now      func() time.Time
}

func NewRateLimiter(tokens TokenVerifier) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		tokens:   tokens,
		now:      time.Now,
	}
}

func (l *RateLimiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup evicts idle buckets every interval until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *RateLimiter) evictIdle() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > visitorIdleTTL {
			delete(l.visitors, key)
			evicted++
		}
	}
	return evicted
}

// Middleware answers 429 once the caller's bucket for the request tier is empty.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, burst, tier := resolveRateTier(r)
		identity := l.resolveIdentity(r, tier)

		// Same identity gets separate quotas per tier, e.g. "ip:1.2.3.4:strict".
		key := identity + ":" + tier

		if !l.getVisitor(key, limit, burst).Allow() {
			logger.FromCtx(r.Context()).Warn("rate limit exceeded",
				zap.String("identity", identity),
				zap.String("tier", tier),
			)
			utils.WriteJSONError(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// resolveIdentity keys the strict tier on the remote address only; client
// headers there would let a caller mint fresh buckets per request.
// Elsewhere a verified token email wins, then X-Device-ID, then the address.
func (l *RateLimiter) resolveIdentity(r *http.Request, tier string) string {
	if tier == "strict" {
		return "ip:" + remoteIP(r)
	}

	if email, ok := utils.GetUserEmailFromContext(r.Context()); ok {
		return "user:" + email
	}
	if l.tokens != nil {
		if token := auth.ExtractBearerToken(r); token != "" {
			if claim, err := l.tokens.Verify(token); err == nil {
				return "user:" + claim.Email
			}
		}
	}
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" {
		return "device:" + deviceID
	}
	return "ip:" + remoteIP(r)
}

func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && (r.URL.Path == "/authentication" || r.URL.Path == "/users") {
		return limitStrict, burstStrict, "strict"
	}

	if r.Header.Get("X-Client-Type") == "frontend-heavy" {
		return limitFrontend, burstFrontend, "frontend"
	}

	return limitGeneral, burstGeneral, "general"
}
