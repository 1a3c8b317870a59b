package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ExpiredTokenDeleter removes outstanding refresh tokens that expired before a cutoff.
type ExpiredTokenDeleter interface {
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

// TokenFlusher deletes expired refresh tokens. Blacklisted tokens go too once expired,
// since an expired token is rejected regardless of its blacklist entry.
type TokenFlusher struct {
	tokens  ExpiredTokenDeleter
	log     logrus.FieldLogger
	timeout time.Duration
	now     func() time.Time
}

func NewTokenFlusher(tokens ExpiredTokenDeleter, log logrus.FieldLogger) *TokenFlusher {
	return &TokenFlusher{tokens: tokens, log: log, timeout: time.Minute, now: time.Now}
}

func (f *TokenFlusher) Flush(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	n, err := f.tokens.DeleteExpiredRefreshTokens(ctx, f.now())
	if err != nil {
		return 0, err
	}
	f.log.WithField("deleted", n).Info("expired refresh tokens flushed")
	return n, nil
}

// StartTokenFlushJob runs f on schedule (standard cron spec or descriptor such as "@daily")
// until ctx is cancelled.
func StartTokenFlushJob(ctx context.Context, schedule string, f *TokenFlusher) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if _, err := f.Flush(ctx); err != nil {
			f.log.WithError(err).Error("token flush job failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token flush schedule %q: %w", schedule, err)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	f.log.WithField("schedule", schedule).Info("token flush job scheduled")
	return c, nil
}
