package task

import (
	"sort"
	"sync"
)

// Tracker keeps every task started in this process so their state can be
// reported.
type Tracker struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*Task)}
}

// Add registers t and returns it
func (tr *Tracker) Add(t *Task) *Task {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.tasks[t.ID.String()] = t
	return t
}

// Get returns the snapshot of the task with the given ID
func (tr *Tracker) Get(id string) (Snapshot, bool) {
	tr.mu.RLock()
	t, ok := tr.tasks[id]
	tr.mu.RUnlock()
	if !ok {
		return Snapshot{}, false
	}
	return t.Snapshot(), true
}

// Snapshots returns all tasks, oldest first
func (tr *Tracker) Snapshots() []Snapshot {
	tr.mu.RLock()
	out := make([]Snapshot, 0, len(tr.tasks))
	for _, t := range tr.tasks {
		out = append(out, t.Snapshot())
	}
	tr.mu.RUnlock()

	// ksuids sort by creation time
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Running returns the number of tasks that have not finished
func (tr *Tracker) Running() int {
	n := 0
	for _, s := range tr.Snapshots() {
		if s.State == StateRunning {
			n++
		}
	}
	return n
}

// Stop asks the task with the given ID to finish. It reports false if no
// such task exists.
func (tr *Tracker) Stop(id string) bool {
	tr.mu.RLock()
	t, ok := tr.tasks[id]
	tr.mu.RUnlock()
	if ok {
		t.Stop()
	}
	return ok
}
