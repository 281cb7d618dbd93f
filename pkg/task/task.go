// Package task runs send and listen jobs on their own goroutine and reports
// progress over a status channel.
//
// A task is stopped by cancelling the context it was started with (or by
// calling Stop). The listen loop checks for cancellation between receives,
// which are bounded by the receiver's read timeout, so a stop request is
// honoured within one timeout.
//
// Callers must drain Status until it is closed.
package task

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/ksuid"
)

// Mode is what a task does
type Mode string

// Task modes
const (
	ModeSend   Mode = "send"
	ModeListen Mode = "listen"
)

// State is the lifecycle state of a task
type State string

// Task states
const (
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

const statusBuffer = 64

// Counters are running totals for a task
type Counters struct {
	Sent      int64 `json:"sent"`
	Truncated int64 `json:"truncated"`
	Received  int64 `json:"received"`
	Corrupt   int64 `json:"corrupt"`
	ReadErrs  int64 `json:"read_errors"`
}

// Snapshot is a point-in-time view of a task
type Snapshot struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	State       State     `json:"state"`
	Started     time.Time `json:"started"`
	Finished    time.Time `json:"finished,omitempty"`
	LastMessage string    `json:"last_message,omitempty"`
	Counters    Counters  `json:"counters"`
}

// Task is a running send or listen job
type Task struct {
	ID      ksuid.KSUID
	Mode    Mode
	Started time.Time

	status   chan Status
	done     chan struct{}
	cancel   context.CancelFunc
	observer Observer

	sent, truncated, received, corrupt, readErrs atomic.Int64

	mu       sync.Mutex
	state    State
	finished time.Time
	last     string
}

func newTask(parent context.Context, mode Mode, observer Observer) (*Task, context.Context) {
	if observer == nil {
		observer = nopObserver{}
	}
	ctx, cancel := context.WithCancel(parent)
	return &Task{
		ID:       ksuid.New(),
		Mode:     mode,
		Started:  time.Now(),
		status:   make(chan Status, statusBuffer),
		done:     make(chan struct{}),
		cancel:   cancel,
		observer: observer,
		state:    StateRunning,
	}, ctx
}

// Status returns the channel of status messages. It is closed after the
// final Success or Failure message.
func (t *Task) Status() <-chan Status {
	return t.status
}

// Done is closed when the task has finished
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stop asks the task to finish
func (t *Task) Stop() {
	t.cancel()
}

// State returns the current lifecycle state
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Snapshot returns the task's current state and counters
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		ID:          t.ID.String(),
		Mode:        t.Mode,
		State:       t.state,
		Started:     t.Started,
		Finished:    t.finished,
		LastMessage: t.last,
		Counters: Counters{
			Sent:      t.sent.Load(),
			Truncated: t.truncated.Load(),
			Received:  t.received.Load(),
			Corrupt:   t.corrupt.Load(),
			ReadErrs:  t.readErrs.Load(),
		},
	}
}

func (t *Task) emit(kind Kind, msg string) {
	s := Status{Kind: kind, Message: msg, Time: time.Now()}

	t.mu.Lock()
	t.last = msg
	switch kind {
	case Success:
		t.state = StateSucceeded
		t.finished = s.Time
	case Failure:
		t.state = StateFailed
		t.finished = s.Time
	}
	t.mu.Unlock()

	t.status <- s
}

func (t *Task) info(msg string) { t.emit(Info, msg) }
func (t *Task) warn(msg string) { t.emit(Warning, msg) }
func (t *Task) fail(msg string) { t.emit(Failure, msg) }
func (t *Task) succeed() { t.emit(Success, "") }

// run executes fn on a new goroutine and closes the task's channels when it returns
func (t *Task) run(ctx context.Context, fn func(ctx context.Context)) {
	go func() {
		defer func() {
			t.cancel()
			close(t.status)
			close(t.done)
		}()
		fn(ctx)
	}()
}

func (t *Task) datagramsSent(n int) {
	t.sent.Add(int64(n))
	t.observer.DatagramsSent(n)
}

func (t *Task) recordsTruncated(n int) {
	t.truncated.Add(int64(n))
	t.observer.RecordsTruncated(n)
}

func (t *Task) recordReceived() {
	t.received.Add(1)
	t.observer.RecordReceived()
}

func (t *Task) parseFailed() {
	t.corrupt.Add(1)
	t.observer.ParseFailed()
}

func (t *Task) readFailed() {
	t.readErrs.Add(1)
	t.observer.ReadFailed()
}
