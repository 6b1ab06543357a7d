package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/sahayahq/sahaya/internal/config"
)

const keyDonationIP = "donation:checkout:ip:%s"

// DonationLimiter throttles checkout attempts per client IP so a stuck
// retry loop cannot flood the payment gateway with orders. Disabled
// configurations return a nil limiter and every request passes.
type DonationLimiter struct {
	enabled bool
	bucket  *TokenBucket
	rate    float64
	burst   int
}

func NewDonationLimiter(cfg config.Config) (*DonationLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.DonationRate <= 0 || limitCfg.DonationBurst <= 0 {
		return nil, errors.New("donation rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &DonationLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		rate:    limitCfg.DonationRate,
		burst:   limitCfg.DonationBurst,
	}, nil
}

func (l *DonationLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *DonationLimiter) Allow(ctx context.Context, clientIP string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyDonationIP, strings.TrimSpace(clientIP)), l.rate, l.burst)
}
