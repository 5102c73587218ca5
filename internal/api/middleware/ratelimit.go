package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed-window counter shared across instances.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	script *redis.Script
	log    *logrus.Logger
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, prefix string, log *logrus.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		script: redis.NewScript(rateLimitScript),
		log:    log,
	}
}

// Allow fails open when Redis is unreachable.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.limit <= 0 || l.window <= 0 || key == "" {
		return true
	}
	ttl := l.window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{l.prefix + ":" + key}, ttl, l.limit).Int64()
	if err != nil {
		if l.log != nil {
			l.log.WithError(err).Warn("rate limiter unavailable")
		}
		return true
	}
	return allowed == 1
}

// ByClientIP keys the limiter on the caller address.
func ByClientIP(c *gin.Context) string { return c.ClientIP() }

// ByPrincipal keys the limiter on the authenticated user, falling back to the address.
func ByPrincipal(c *gin.Context) string {
	if p, ok := PrincipalFrom(c); ok {
		return "u:" + p.ID
	}
	return c.ClientIP()
}

func RateLimit(l *RedisLimiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), keyFn(c)) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apiError{
				Code:    utils.CodeRateLimited,
				Message: "too many requests, try again later",
			})
			return
		}
		c.Next()
	}
}
