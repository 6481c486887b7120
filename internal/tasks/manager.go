// Package tasks tracks background scrape jobs so callers can observe work
// that runs after their request has already returned.
package tasks

import (
	"sync"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// SourceResult records the outcome of one source's extraction. A failed
// source never blocks the others; its error is kept here instead.
type SourceResult struct {
	Source  string
	Reviews int
	Err     error
}

type Task struct {
	ID               uuid.UUID
	PlaceID          uuid.UUID
	Status           Status
	Sources          []SourceResult
	ReviewsScraped   int
	SummaryGenerated bool
	Err              error
}

// Manager is an in-memory registry of scrape tasks. Entries are kept for the
// lifetime of the process; this is a single-node demo service.
type Manager struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

func NewManager() *Manager {
	return &Manager{tasks: make(map[uuid.UUID]*Task)}
}

func (m *Manager) Create(placeID uuid.UUID) *Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := &Task{
		ID:      uuid.New(),
		PlaceID: placeID,
		Status:  StatusPending,
	}
	m.tasks[t.ID] = t
	return t
}

// Get returns a snapshot of the task, or nil when unknown.
func (m *Manager) Get(id uuid.UUID) *Task {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil
	}
	snapshot := *t
	snapshot.Sources = append([]SourceResult(nil), t.Sources...)
	return &snapshot
}

func (m *Manager) MarkRunning(id uuid.UUID) {
	m.update(id, func(t *Task) { t.Status = StatusRunning })
}

func (m *Manager) AddSourceResult(id uuid.UUID, res SourceResult) {
	m.update(id, func(t *Task) {
		t.Sources = append(t.Sources, res)
		t.ReviewsScraped += res.Reviews
	})
}

func (m *Manager) MarkDone(id uuid.UUID, summaryGenerated bool) {
	m.update(id, func(t *Task) {
		t.Status = StatusDone
		t.SummaryGenerated = summaryGenerated
	})
}

func (m *Manager) MarkFailed(id uuid.UUID, err error) {
	m.update(id, func(t *Task) {
		t.Status = StatusFailed
		t.Err = err
	})
}

func (m *Manager) update(id uuid.UUID, fn func(*Task)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.tasks[id]; ok {
		fn(t)
	}
}
