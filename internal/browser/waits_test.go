package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/dwitest/internal/common"
)

func newBareSession() *Session {
	return &Session{config: common.NewDefaultBrowserConfig(), log: common.GetLogger()}
}

func TestPollUntil_SucceedsBeforeTimeout(t *testing.T) {
	s := newBareSession()

	calls := 0
	err := s.PollUntil(context.Background(), PollOptions{
		Timeout:  2 * time.Second,
		Interval: 10 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestPollUntil_TimesOut(t *testing.T) {
	s := newBareSession()

	err := s.PollUntil(context.Background(), PollOptions{
		Timeout:  200 * time.Millisecond,
		Interval: 20 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollUntil_ParentCancellationIsNotATimeout(t *testing.T) {
	s := newBareSession()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := s.PollUntil(ctx, PollOptions{
		Timeout:  5 * time.Second,
		Interval: 10 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
}

func TestPollUntil_ConditionErrorStopsLoop(t *testing.T) {
	s := newBareSession()

	boom := errors.New("boom")
	calls := 0
	err := s.PollUntil(context.Background(), PollOptions{
		Timeout:  time.Second,
		Interval: 10 * time.Millisecond,
	}, func(context.Context) (bool, error) {
		calls++
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestPollUntil_ProgressCallbackFires(t *testing.T) {
	s := newBareSession()

	progressCalls := 0
	_ = s.PollUntil(context.Background(), PollOptions{
		Timeout:       300 * time.Millisecond,
		Interval:      20 * time.Millisecond,
		ProgressEvery: 50 * time.Millisecond,
		OnProgress:    func(time.Duration) { progressCalls++ },
	}, func(context.Context) (bool, error) {
		return false, nil
	})

	assert.Greater(t, progressCalls, 0)
}
