package service

//go:generate mockgen -destination=../../mocks/mock_collaborators.go -package=mocks github.com/Khushiyant/nibtara/internal/auth/service SessionStateCache,EventPublisher

import (
	"context"
	"io"
	"time"

	"github.com/Khushiyant/nibtara/internal/auth/domain"
	"github.com/sirupsen/logrus"
)

// SessionState is the cached liveness of a refresh token.
type SessionState string

const (
	SessionActive  SessionState = "active"
	SessionRevoked SessionState = "revoked"
)

// SessionStateCache fronts the refresh-token table for per-request gatekeeping.
// A miss returns found == false.
type SessionStateCache interface {
	Get(ctx context.Context, refreshID string) (state SessionState, found bool, err error)
	Set(ctx context.Context, refreshID string, state SessionState, ttl time.Duration) error
}

// EventPublisher delivers account lifecycle events after they commit.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AccountEvent) error
}

type noopSessionCache struct{}

func (noopSessionCache) Get(context.Context, string) (SessionState, bool, error) { return "", false, nil }
func (noopSessionCache) Set(context.Context, string, SessionState, time.Duration) error {
	return nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.AccountEvent) error { return nil }

type options struct {
	log             logrus.FieldLogger
	sessions        SessionStateCache
	sessionCacheTTL time.Duration
	events          EventPublisher
}

type Option func(*options)

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithSessionCache caches refresh-token state for at most ttl.
func WithSessionCache(cache SessionStateCache, ttl time.Duration) Option {
	return func(o *options) {
		o.sessions = cache
		o.sessionCacheTTL = ttl
	}
}

func WithEventPublisher(p EventPublisher) Option {
	return func(o *options) { o.events = p }
}

func buildOptions(opts []Option) options {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	o := options{
		log:             discard,
		sessions:        noopSessionCache{},
		sessionCacheTTL: 5 * time.Minute,
		events:          noopPublisher{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
