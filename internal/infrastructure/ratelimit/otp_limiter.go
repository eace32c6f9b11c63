package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"seller-panel.backend/internal/config"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/redis"
)

var (
	redisTTL  = redis.TTL
	redisIncr = redis.IncrWithTTL
	redisSet  = redis.Set
)

// OtpLimiter throttles OTP issuance per recipient and purpose
type OtpLimiter struct {
	window      time.Duration
	maxInWindow int
	cooldown    time.Duration
}

// NewOtpLimiter creates a limiter from OTP settings
func NewOtpLimiter(cfg config.OTPConfig) *OtpLimiter {
	return &OtpLimiter{window: cfg.RequestWindow, maxInWindow: cfg.MaxRequests, cooldown: cfg.Cooldown}
}

// Allow returns a RateLimited error when subject must wait before another OTP.
// Redis failures are logged and the request is let through.
func (l *OtpLimiter) Allow(ctx context.Context, subject, purpose string) error {
	subject = strings.ToLower(strings.TrimSpace(subject))
	blockKey := fmt.Sprintf("otp:block:%s:%s", purpose, subject)
	lastKey := fmt.Sprintf("otp:last:%s:%s", purpose, subject)
	countKey := fmt.Sprintf("otp:count:%s:%s", purpose, subject)

	if ttl, err := redisTTL(ctx, blockKey); err == nil && ttl > 0 {
		return domainerrors.RateLimited(fmt.Sprintf("too many OTP requests; try again in %d seconds", int(ttl.Seconds())))
	}
	if ttl, err := redisTTL(ctx, lastKey); err == nil && ttl > 0 {
		return domainerrors.RateLimited(fmt.Sprintf("please wait %d seconds before requesting another OTP", int(ttl.Seconds())))
	}

	count, err := redisIncr(ctx, countKey, l.window)
	if err != nil {
		logger.Warn(ctx, "OTP limiter unavailable", zap.Error(err))
		return nil
	}
	if l.maxInWindow > 0 && int(count) > l.maxInWindow {
		_ = redisSet(ctx, blockKey, "1", l.window)
		return domainerrors.RateLimited(fmt.Sprintf("too many OTP requests; try again in %d seconds", int(l.window.Seconds())))
	}

	if l.cooldown > 0 {
		_ = redisSet(ctx, lastKey, "1", l.cooldown)
	}
	return nil
}
