package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"spotly/internal/shared/config"
	"spotly/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeDefault RateLimitType = "default"
	RateLimitTypePublic  RateLimitType = "public"
	RateLimitTypeCreate  RateLimitType = "create"
	RateLimitTypeReserve RateLimitType = "reserve"
	RateLimitTypeRedeem  RateLimitType = "redeem"
	RateLimitTypeHealth  RateLimitType = "health"
)

type Config struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PublicRequests  int           `json:"public_requests"`
	CreateRequests  int           `json:"create_requests"`
	ReserveRequests int           `json:"reserve_requests"`
	RedeemRequests  int           `json:"redeem_requests"`
	HealthRequests  int           `json:"health_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

func ConfigFromConfig(cfg config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         cfg.Enabled,
		WindowDuration:  cfg.WindowDuration,
		DefaultRequests: cfg.DefaultRequests,
		PublicRequests:  cfg.PublicRequests,
		CreateRequests:  cfg.CreateRequests,
		ReserveRequests: cfg.ReserveRequests,
		RedeemRequests:  cfg.RedeemRequests,
		HealthRequests:  cfg.HealthRequests,
		WhitelistedIPs:  cfg.WhitelistedIPs,
	}
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client    *redis.Client
	config    *Config
	whitelist map[string]struct{}
	now       func() time.Time
	seq       atomic.Uint64
}

// NewRateLimiter builds a limiter. A nil client disables limiting.
func NewRateLimiter(client *redis.Client, cfg *Config) *RateLimiter {
	whitelist := make(map[string]struct{}, len(cfg.WhitelistedIPs))
	for _, ip := range cfg.WhitelistedIPs {
		whitelist[ip] = struct{}{}
	}
	return &RateLimiter{
		client:    client,
		config:    cfg,
		whitelist: whitelist,
		now:       time.Now,
	}
}

// IsAllowed checks whether one more request of the given type fits the window
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)
	if !r.config.Enabled || r.client == nil || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: r.now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := constants.BuildRateLimitKey(clientIP, string(limitType))
	return r.checkLimit(ctx, key, limit)
}

// Sliding window over a sorted set scored by request time in milliseconds.
// Returns {allowed, remaining}.
const slidingWindowScript = `
local key = KEYS[1]
local window_start = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_seconds = tonumber(ARGV[4])
local member = ARGV[5]

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

local current_count = redis.call('ZCARD', key)
if current_count >= limit then
	redis.call('EXPIRE', key, window_seconds)
	return {0, 0}
end

redis.call('ZADD', key, now, member)
redis.call('EXPIRE', key, window_seconds)
return {1, limit - current_count - 1}
`

func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := r.now()
	windowStart := now.Add(-r.config.WindowDuration)
	windowSeconds := int(r.config.WindowDuration.Seconds())
	if windowSeconds < 1 {
		windowSeconds = 1
	}
	// Members must be unique or requests in the same millisecond collapse
	member := strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatUint(r.seq.Add(1), 10)

	result, err := r.client.Eval(ctx, slidingWindowScript, []string{key},
		windowStart.UnixMilli(),
		now.UnixMilli(),
		limit,
		windowSeconds,
		member).Result()
	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return nil, fmt.Errorf("unexpected redis response: %v", result)
	}
	allowed, ok1 := values[0].(int64)
	remaining, ok2 := values[1].(int64)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unexpected redis response: %v", values)
	}

	return &Result{
		Allowed:   allowed == 1,
		Limit:     limit,
		Remaining: int(remaining),
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeCreate:
		return r.config.CreateRequests
	case RateLimitTypeReserve:
		return r.config.ReserveRequests
	case RateLimitTypeRedeem:
		return r.config.RedeemRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	_, ok := r.whitelist[ip]
	return ok
}
