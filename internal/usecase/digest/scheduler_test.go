package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runnerStub counts RunOnce calls
type runnerStub struct {
	calls int
	err   error
}

func (r *runnerStub) RunOnce(ctx context.Context) (Report, error) {
	r.calls++
	if _, ok := ctx.Deadline(); !ok {
		return Report{}, errors.New("scheduled run without deadline")
	}
	return Report{Sent: 1}, r.err
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	s, err := NewScheduler("every tuesday", &runnerStub{}, nil)

	assert.Nil(t, s)
	assert.ErrorContains(t, err, "invalid digest schedule")
}

func TestScheduler_RunInvokesRunner(t *testing.T) {
	runner := &runnerStub{err: errors.New("smtp down")}
	s, err := NewScheduler("0 8 1 * *", runner, nil)
	require.NoError(t, err)

	// Errors are logged, not propagated
	s.run()

	assert.Equal(t, 1, runner.calls)
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler("0 8 1 * *", &runnerStub{}, nil)
	require.NoError(t, err)

	s.Start()
	next := s.Next()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	assert.False(t, next.IsZero())
	assert.Equal(t, 1, next.Day())
	assert.Equal(t, 8, next.Hour())
}
