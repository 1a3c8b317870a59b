package jobs

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int64
	err     error
}

func (f *fakeDeleter) DeleteExpiredRefreshTokens(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return f.n, f.err
}

func (f *fakeDeleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestTokenFlusher_Flush(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	deleter := &fakeDeleter{n: 4}
	f := NewTokenFlusher(deleter, quietLogger())
	f.now = func() time.Time { return fixed }

	n, err := f.Flush(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, []time.Time{fixed}, deleter.cutoffs)

	deleter.err = errors.New("db error")
	_, err = f.Flush(context.Background())
	assert.Error(t, err)
}

func TestStartTokenFlushJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deleter := &fakeDeleter{}
	f := NewTokenFlusher(deleter, quietLogger())

	c, err := StartTokenFlushJob(ctx, "@every 1s", f)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)

	assert.Eventually(t, func() bool { return deleter.calls() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestStartTokenFlushJob_BadSchedule(t *testing.T) {
	_, err := StartTokenFlushJob(context.Background(), "every tuesday", NewTokenFlusher(&fakeDeleter{}, quietLogger()))
	assert.Error(t, err)
}
