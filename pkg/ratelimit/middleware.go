package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"spotly/internal/shared/utils/response"
	"spotly/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware enforces per client limits. A failing Redis lets the request
// through; limiting is best effort.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())
		ctx := c.Request.Context()

		result, err := rateLimiter.IsAllowed(ctx, clientIP, limitType)
		if err != nil {
			logger.FromContext(ctx).Warn("Rate limit check failed, allowing request",
				"client_ip", clientIP,
				"limit_type", string(limitType),
				"error", err.Error(),
			)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.FromContext(ctx).LogRateLimitExceeded(ctx, clientIP, c.FullPath())
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"code":       "rate_limited",
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType classifies a request by its route template
func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	case strings.HasSuffix(path, "/reserve"):
		return RateLimitTypeReserve

	case strings.HasSuffix(path, "/redeem"):
		return RateLimitTypeRedeem

	case method == http.MethodPost && strings.HasSuffix(path, "/spots"):
		return RateLimitTypeCreate

	case method == http.MethodGet && (strings.Contains(path, "/spots/") || strings.Contains(path, "/tickets/")):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
