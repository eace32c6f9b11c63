package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/metrics"
)

type expiredOtpCleaner interface {
	ClearExpiredOtps(ctx context.Context, now time.Time) (int64, error)
}

// OtpExpiryJob periodically wipes OTP hashes whose expiry has passed
type OtpExpiryJob struct {
	repo     expiredOtpCleaner
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewOtpExpiryJob(repo expiredOtpCleaner, interval time.Duration) *OtpExpiryJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &OtpExpiryJob{
		repo:     repo,
		interval: interval,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
}

// Start blocks until ctx is cancelled or Stop is called
func (j *OtpExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting OTP expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "OTP expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "OTP expiry job stopped")
			return
		case <-ticker.C:
			j.clearExpired(ctx)
		}
	}
}

func (j *OtpExpiryJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *OtpExpiryJob) clearExpired(ctx context.Context) {
	cleared, err := j.repo.ClearExpiredOtps(ctx, j.now().UTC())
	if err != nil {
		logger.Error(ctx, "Failed to clear expired OTPs", zap.Error(err))
		return
	}
	if cleared == 0 {
		return
	}
	metrics.ExpiredOtpsCleared(cleared)
	logger.Info(ctx, "Cleared expired OTPs", zap.Int64("count", cleared))
}
