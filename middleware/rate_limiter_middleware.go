package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	localCache "github.com/saandeepkondury/py-trends-API/cache"
	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

func RateLimiter(cfg *model.EnvConfig) gin.HandlerFunc {
	retryAfter := retryAfterSeconds(cfg.RateLimitRPS)

	return func(ctx *gin.Context) {
		if !cfg.RateLimiter || quietPaths[ctx.Request.URL.Path] {
			ctx.Next()
			return
		}

		if !limiterFor(ctx.ClientIP(), cfg).Allow() {
			log.Warn().
				Str("ip", ctx.ClientIP()).
				Str("path", ctx.Request.URL.Path).
				Msg("rate limit exceeded")
			ctx.Header("Retry-After", strconv.Itoa(retryAfter))
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Success: false,
				Message: fmt.Sprintf("Too many requests. Please wait %d seconds before trying again.", retryAfter),
				Error:   "Rate limit exceeded",
				Retry:   retryAfter,
			})
			return
		}

		ctx.Next()
	}
}

// limiterFor returns the token bucket for ip, creating it on first use.
func limiterFor(ip string, cfg *model.EnvConfig) *rate.Limiter {
	if val, found := localCache.RateLimiterCache.Get(ip); found {
		return val.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	localCache.RateLimiterCache.Set(ip, limiter, cache.DefaultExpiration)
	return limiter
}

// retryAfterSeconds is the time one token takes to refill, at least a second.
func retryAfterSeconds(rps float64) int {
	if rps <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/rps)))
}

func RecoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Interface("panic", err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("PANIC_RECOVERED")

			c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
				Success: false,
				Message: "Internal server error",
				Error:   "unexpected_panic",
			})
		}
	}()
	c.Next()
}

func ZerologMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if quietPaths[path] || path == "/openapi.json" || path == "/docs" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("request_id", c.GetString(RequestIDKey)).
			Msg("HTTP Request")
	}
}
