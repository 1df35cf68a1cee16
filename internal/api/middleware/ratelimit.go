package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"credit-application-system/internal/api/handler/dto"
	"credit-application-system/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitWindow   = time.Second
	rateLimitPrefix   = "ratelimit:"
	limiterIdleExpiry = 10 * time.Minute
)

// windowCounter counts hits on key inside a fixed window shared by every
// instance of the service.
type windowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type redisCounter struct {
	client *redis.Client
}

func (c redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

type RateLimiterMiddleware struct {
	counter  windowCounter
	limiters sync.Map
	cfg      config.RateLimitConfig
	logger   *slog.Logger
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiterMiddleware limits requests per client IP. With a Redis client
// the budget is shared across instances; otherwise, or whenever Redis fails,
// an in-process token bucket is used.
func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient *redis.Client, logger *slog.Logger) *RateLimiterMiddleware {
	var counter windowCounter
	if redisClient != nil {
		counter = redisCounter{client: redisClient}
	}
	return newRateLimiter(cfg, counter, logger)
}

func newRateLimiter(cfg config.RateLimitConfig, counter windowCounter, logger *slog.Logger) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		counter: counter,
		cfg:     cfg,
		logger:  logger.With("component", "RateLimiter"),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	if cfg.Enabled {
		rl.logger.Info("Rate limiter configured", "rps", cfg.RPS, "burst", cfg.Burst, "shared", counter != nil)
		go rl.cleanupLimiters()
	}
	return rl
}

// Close stops the background cleanup of idle in-process limiters.
func (rl *RateLimiterMiddleware) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// limit is the number of requests allowed per window when counting in Redis.
func (rl *RateLimiterMiddleware) limit() int64 {
	perWindow := int64(math.Ceil(rl.cfg.RPS * rateLimitWindow.Seconds()))
	if int64(rl.cfg.Burst) > perWindow {
		return int64(rl.cfg.Burst)
	}
	return perWindow
}

func (rl *RateLimiterMiddleware) getLimiter(ip string) *rate.Limiter {
	limiter, _ := rl.limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(rl.cfg.RPS), rl.cfg.Burst))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiterMiddleware) cleanupLimiters() {
	ticker := time.NewTicker(limiterIdleExpiry)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.pruneIdle()
		}
	}
}

// pruneIdle drops limiters whose bucket has refilled completely.
func (rl *RateLimiterMiddleware) pruneIdle() {
	rl.limiters.Range(func(key, value interface{}) bool {
		limiter := value.(*rate.Limiter)
		if limiter.TokensAt(rl.now()) >= float64(limiter.Burst()) {
			rl.limiters.Delete(key)
		}
		return true
	})
}

// extractIP keys on the connection address only. Forwarding headers are
// resolved once by chi's RealIP ahead of this middleware, so they are not
// consulted again here.
func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (rl *RateLimiterMiddleware) allow(ctx context.Context, ip string) bool {
	if rl.counter != nil {
		key := fmt.Sprintf("%s%s:%d", rateLimitPrefix, ip, rl.now().Unix())
		count, err := rl.counter.Incr(ctx, key, rateLimitWindow)
		if err == nil {
			return count <= rl.limit()
		}
		rl.logger.WarnContext(ctx, "Shared rate limit check failed, using local limiter", "error", err, "ip", ip)
	}
	return rl.getLimiter(ip).AllowN(rl.now(), 1)
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.cfg.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)

		if !rl.allow(r.Context(), ip) {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%.0f", rateLimitWindow.Seconds()))
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
				Error: dto.ErrorDetail{Code: "RATE_LIMITED", Message: "Rate limit exceeded"},
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
