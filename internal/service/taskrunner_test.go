package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	when    time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return !t.fired
}

// fakeClock fires timers synchronously as virtual time advances, including
// timers re-armed by the callbacks themselves.
type fakeClock struct {
	now    time.Duration
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	timer := &fakeTimer{when: c.now + d, f: f}
	c.timers = append(c.timers, timer)
	return timer
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		var next *fakeTimer
		for _, timer := range c.timers {
			if timer.fired || timer.stopped || timer.when > target {
				continue
			}
			if next == nil || timer.when < next.when {
				next = timer
			}
		}
		if next == nil {
			break
		}
		c.now = next.when
		next.fired = true
		next.f()
	}
	c.now = target
}

func testTask(duration int) domain.Task {
	return domain.Task{ID: "t1", Title: "Watch", Duration: duration}
}

func TestRunnerCountdownCompletesOnce(t *testing.T) {
	clock := &fakeClock{}
	runner := NewTaskRunnerWithClock(clock)

	var ticks []int
	completes := 0
	var done *api.CompleteTaskResponse

	err := runner.Start(7, testTask(3), domain.UserTask{ID: "ut1"}, RunCallbacks{
		Tick: func(remaining int) { ticks = append(ticks, remaining) },
		Complete: func() (*api.CompleteTaskResponse, error) {
			completes++
			return &api.CompleteTaskResponse{
				Reward:     decimal.NewFromInt(30),
				NewBalance: decimal.NewFromInt(130),
			}, nil
		},
		Done:   func(resp *api.CompleteTaskResponse) { done = resp },
		Failed: func(err error) { t.Fatalf("unexpected failure: %v", err) },
	})
	require.NoError(t, err)

	clock.Advance(10 * time.Second)

	assert.Equal(t, []int{3, 2, 1, 0}, ticks)
	assert.Equal(t, 1, completes, "completion endpoint must be hit exactly once")
	require.NotNil(t, done)
	assert.Equal(t, "130", done.NewBalance.String())
	assert.Nil(t, runner.Active(7), "run must be cleared after completion")
}

func TestRunnerRejectsSecondStart(t *testing.T) {
	clock := &fakeClock{}
	runner := NewTaskRunnerWithClock(clock)

	require.NoError(t, runner.Start(7, testTask(5), domain.UserTask{ID: "ut1"}, RunCallbacks{
		Complete: func() (*api.CompleteTaskResponse, error) { return &api.CompleteTaskResponse{}, nil },
	}))

	err := runner.Start(7, testTask(5), domain.UserTask{ID: "ut2"}, RunCallbacks{})
	assert.ErrorIs(t, err, domain.ErrTaskInProgress)

	// Other chats are unaffected.
	require.NoError(t, runner.Start(8, testTask(5), domain.UserTask{ID: "ut3"}, RunCallbacks{
		Complete: func() (*api.CompleteTaskResponse, error) { return &api.CompleteTaskResponse{}, nil },
	}))
}

func TestRunnerFailedCompletionAwaitsRetry(t *testing.T) {
	clock := &fakeClock{}
	runner := NewTaskRunnerWithClock(clock)

	attempt := 0
	var failed error
	doneCalls := 0

	require.NoError(t, runner.Start(7, testTask(1), domain.UserTask{ID: "ut1"}, RunCallbacks{
		Complete: func() (*api.CompleteTaskResponse, error) {
			attempt++
			if attempt == 1 {
				return nil, errors.New("backend unavailable")
			}
			return &api.CompleteTaskResponse{}, nil
		},
		Done:   func(*api.CompleteTaskResponse) { doneCalls++ },
		Failed: func(err error) { failed = err },
	}))

	clock.Advance(2 * time.Second)

	require.Error(t, failed)
	active := runner.Active(7)
	require.NotNil(t, active)
	assert.Equal(t, RunAwaitingRetry, active.State)

	// The slot stays taken until the retry succeeds.
	assert.ErrorIs(t, runner.Start(7, testTask(1), domain.UserTask{ID: "ut2"}, RunCallbacks{}), domain.ErrTaskInProgress)

	require.NoError(t, runner.Retry(7))
	assert.Equal(t, 2, attempt)
	assert.Equal(t, 1, doneCalls)
	assert.Nil(t, runner.Active(7))
}

func TestRunnerRetryWithoutFailure(t *testing.T) {
	clock := &fakeClock{}
	runner := NewTaskRunnerWithClock(clock)

	assert.ErrorIs(t, runner.Retry(7), domain.ErrNoActiveTask)

	require.NoError(t, runner.Start(7, testTask(10), domain.UserTask{ID: "ut1"}, RunCallbacks{}))
	// Still counting down, nothing to retry.
	assert.ErrorIs(t, runner.Retry(7), domain.ErrNoActiveTask)
}

func TestRunnerCancelStopsTicking(t *testing.T) {
	clock := &fakeClock{}
	runner := NewTaskRunnerWithClock(clock)

	var ticks []int
	require.NoError(t, runner.Start(7, testTask(5), domain.UserTask{ID: "ut1"}, RunCallbacks{
		Tick: func(remaining int) { ticks = append(ticks, remaining) },
		Complete: func() (*api.CompleteTaskResponse, error) {
			t.Fatal("completion must not run after cancel")
			return nil, nil
		},
	}))

	clock.Advance(2 * time.Second)
	runner.Cancel(7)
	clock.Advance(10 * time.Second)

	assert.Equal(t, []int{5, 4, 3}, ticks)
	assert.Nil(t, runner.Active(7))
}
