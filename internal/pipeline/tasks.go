package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// TaskStatus represents the state of a processing task.
type TaskStatus string

const (
	StatusQueued     TaskStatus = "queued"
	StatusProcessing TaskStatus = "processing"
	StatusCompleted  TaskStatus = "completed"
	StatusFailed     TaskStatus = "failed"
)

// Task tracks one single-document or collection processing request.
type Task struct {
	mu sync.Mutex

	ID    string   `json:"task_id"`
	Kind  string   `json:"kind"` // "single" or "collection"
	Files []string `json:"files"`

	Status     TaskStatus `json:"status"`
	OutputFile string     `json:"output_file,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	errors []string
}

// TaskSnapshot is a read-only, JSON-safe copy of task state.
type TaskSnapshot struct {
	ID         string     `json:"task_id"`
	Kind       string     `json:"kind"`
	Files      []string   `json:"files"`
	Status     TaskStatus `json:"status"`
	OutputFile string     `json:"output_file,omitempty"`
	Errors     []string   `json:"errors"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SetStatus updates task status atomically.
func (t *Task) SetStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
	t.UpdatedAt = time.Now()
}

// SetOutput records the persisted report path.
func (t *Task) SetOutput(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.OutputFile = path
	t.UpdatedAt = time.Now()
}

// AddError records a per-document error without failing the task.
func (t *Task) AddError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors = append(t.errors, msg)
	t.UpdatedAt = time.Now()
}

func (t *Task) lastUpdate() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.UpdatedAt
}

// Snapshot returns a JSON-safe copy of the task state.
func (t *Task) Snapshot() TaskSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	errs := t.errors
	if errs == nil {
		errs = []string{}
	}
	files := make([]string, len(t.Files))
	copy(files, t.Files)
	return TaskSnapshot{
		ID:         t.ID,
		Kind:       t.Kind,
		Files:      files,
		Status:     t.Status,
		OutputFile: t.OutputFile,
		Errors:     errs,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// TaskStore is a thread-safe in-memory task registry with TTL eviction.
// State is best-effort and non-persistent.
type TaskStore struct {
	mu    sync.Mutex
	tasks map[string]*Task
	ttl   time.Duration
}

func NewTaskStore(ttl time.Duration) *TaskStore {
	return &TaskStore{
		tasks: make(map[string]*Task),
		ttl:   ttl,
	}
}

func (s *TaskStore) Put(task *Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

func (s *TaskStore) Get(id string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks[id]
}

// List returns snapshots of all live tasks.
func (s *TaskStore) List() []TaskSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TaskSnapshot, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.Snapshot())
	}
	return out
}

// Cleanup removes expired tasks. UpdatedAt is written under the task
// mutex, so it must be read there too even while the store is locked.
func (s *TaskStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, t := range s.tasks {
		if now.Sub(t.lastUpdate()) > s.ttl {
			delete(s.tasks, id)
		}
	}
}

// NewTaskID derives a short unique task identifier from the request
// contents and the current time.
func NewTaskID(seed string) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s-%d", seed, time.Now().UnixNano())))
	return fmt.Sprintf("task_%x", h[:6])
}
