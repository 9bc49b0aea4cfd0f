package service

import (
	"sync"
	"time"

	"github.com/mn-works/earnbot/internal/api"
	"github.com/mn-works/earnbot/internal/domain"
)

// RunState is the task execution lifecycle: Idle -> Active (ticking down) ->
// Completing -> Idle. A failed completion parks the run in AwaitingRetry so
// the user can retry manually.
type RunState int

const (
	RunIdle RunState = iota
	RunActive
	RunCompleting
	RunAwaitingRetry
)

func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunActive:
		return "active"
	case RunCompleting:
		return "completing"
	case RunAwaitingRetry:
		return "awaiting_retry"
	}
	return "unknown"
}

// Clock abstracts timer scheduling so tests can advance virtual time.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RunCallbacks connect a run to its screen. Tick fires once per second with
// the remaining time; Complete performs the completion API call; Done fires
// exactly once per successful completion with the server response.
type RunCallbacks struct {
	Tick     func(remaining int)
	Complete func() (*api.CompleteTaskResponse, error)
	Done     func(resp *api.CompleteTaskResponse)
	Failed   func(err error)
}

type run struct {
	task      domain.Task
	userTask  domain.UserTask
	remaining int
	state     RunState
	timer     Timer
	callbacks RunCallbacks
}

// ActiveRun is a read-only snapshot of a chat's run.
type ActiveRun struct {
	Task      domain.Task
	UserTask  domain.UserTask
	Remaining int
	State     RunState
}

// TaskRunner drives the per-chat countdown as a chain of one-shot timers, so
// an unmount (cancel) stops the chain cleanly. At most one run per chat.
type TaskRunner struct {
	clock Clock

	mu   sync.Mutex
	runs map[int64]*run
}

func NewTaskRunner() *TaskRunner {
	return NewTaskRunnerWithClock(realClock{})
}

func NewTaskRunnerWithClock(clock Clock) *TaskRunner {
	return &TaskRunner{clock: clock, runs: make(map[int64]*run)}
}

// Start begins the countdown for a task already registered with the backend.
// Returns ErrTaskInProgress when the chat has an unfinished run.
func (r *TaskRunner) Start(chatID int64, task domain.Task, userTask domain.UserTask, cb RunCallbacks) error {
	r.mu.Lock()
	if _, exists := r.runs[chatID]; exists {
		r.mu.Unlock()
		return domain.ErrTaskInProgress
	}
	active := &run{
		task:      task,
		userTask:  userTask,
		remaining: task.Duration,
		state:     RunActive,
		callbacks: cb,
	}
	r.runs[chatID] = active
	active.timer = r.clock.AfterFunc(time.Second, func() { r.tick(chatID) })
	r.mu.Unlock()

	if cb.Tick != nil {
		cb.Tick(task.Duration)
	}
	return nil
}

func (r *TaskRunner) tick(chatID int64) {
	r.mu.Lock()
	active, ok := r.runs[chatID]
	if !ok || active.state != RunActive {
		r.mu.Unlock()
		return
	}
	active.remaining--
	remaining := active.remaining
	if remaining > 0 {
		active.timer = r.clock.AfterFunc(time.Second, func() { r.tick(chatID) })
		cb := active.callbacks
		r.mu.Unlock()
		if cb.Tick != nil {
			cb.Tick(remaining)
		}
		return
	}
	active.state = RunCompleting
	r.mu.Unlock()

	if active.callbacks.Tick != nil {
		active.callbacks.Tick(0)
	}
	r.complete(chatID)
}

func (r *TaskRunner) complete(chatID int64) {
	r.mu.Lock()
	active, ok := r.runs[chatID]
	if !ok || active.state != RunCompleting {
		r.mu.Unlock()
		return
	}
	cb := active.callbacks
	r.mu.Unlock()

	resp, err := cb.Complete()
	if err != nil {
		// Keep the run so the user can retry; no automatic retry.
		r.mu.Lock()
		if active, ok := r.runs[chatID]; ok {
			active.state = RunAwaitingRetry
		}
		r.mu.Unlock()
		if cb.Failed != nil {
			cb.Failed(err)
		}
		return
	}

	r.mu.Lock()
	delete(r.runs, chatID)
	r.mu.Unlock()
	if cb.Done != nil {
		cb.Done(resp)
	}
}

// Retry re-attempts completion after a failed completion call.
func (r *TaskRunner) Retry(chatID int64) error {
	r.mu.Lock()
	active, ok := r.runs[chatID]
	if !ok || active.state != RunAwaitingRetry {
		r.mu.Unlock()
		return domain.ErrNoActiveTask
	}
	active.state = RunCompleting
	r.mu.Unlock()

	r.complete(chatID)
	return nil
}

// Cancel stops the timer chain and clears the run, e.g. when the user leaves
// the tasks screen.
func (r *TaskRunner) Cancel(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if active, ok := r.runs[chatID]; ok {
		if active.timer != nil {
			active.timer.Stop()
		}
		delete(r.runs, chatID)
	}
}

// Active returns a snapshot of the chat's run, or nil when idle.
func (r *TaskRunner) Active(chatID int64) *ActiveRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	active, ok := r.runs[chatID]
	if !ok {
		return nil
	}
	return &ActiveRun{
		Task:      active.task,
		UserTask:  active.userTask,
		Remaining: active.remaining,
		State:     active.state,
	}
}
