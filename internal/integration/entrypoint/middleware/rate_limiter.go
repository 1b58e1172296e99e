package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/epiwatch/backend/internal/domain/error"
	"github.com/epiwatch/backend/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = time.Minute
)

// RateLimiter is a fixed-window limiter keyed by client IP. Counters live in
// Redis so every API instance enforces the same budget.
type RateLimiter struct {
	client      *redis.Client
	scope       string
	maxAttempts int
	window      time.Duration
}

// NewRateLimiter creates a limiter for one route group. Non-positive
// arguments use the defaults of 5 attempts per minute.
func NewRateLimiter(client *redis.Client, scope string, maxAttempts int, window time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &RateLimiter{client: client, scope: scope, maxAttempts: maxAttempts, window: window}
}

// Middleware answers 429 once a client exhausts its window. Redis failures
// let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := rl.allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.WarnContext(c.Request.Context(), "Rate limiter unavailable", "scope", rl.scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, client string) (bool, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", rl.scope, client)

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// First hit of the window, or a counter left without expiry.
		if err := rl.client.PExpire(ctx, key, rl.window).Err(); err != nil {
			return false, 0, err
		}
		remaining = rl.window
	}

	return count.Val() <= int64(rl.maxAttempts), remaining, nil
}
