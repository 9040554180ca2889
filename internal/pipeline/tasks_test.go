package pipeline

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTaskSnapshotCopiesState(t *testing.T) {
	now := time.Now()
	task := &Task{
		ID:        "task_abc",
		Kind:      "collection",
		Files:     []string{"a.pdf", "b.pdf"},
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.SetStatus(StatusProcessing)
	task.AddError("a.pdf: parse failed")
	task.SetOutput("/out/report.json")

	snap := task.Snapshot()
	if snap.Status != StatusProcessing {
		t.Fatalf("expected processing status, got %q", snap.Status)
	}
	if snap.OutputFile != "/out/report.json" {
		t.Fatalf("unexpected output file: %q", snap.OutputFile)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "a.pdf: parse failed" {
		t.Fatalf("unexpected errors: %v", snap.Errors)
	}

	// Mutating the snapshot's file list must not touch the task.
	snap.Files[0] = "mutated"
	if task.Files[0] != "a.pdf" {
		t.Fatalf("snapshot shares file slice with task")
	}
}

func TestTaskSnapshotErrorsNeverNil(t *testing.T) {
	task := &Task{ID: "task_x", Status: StatusQueued}
	if snap := task.Snapshot(); snap.Errors == nil {
		t.Fatalf("errors must marshal as [], not null")
	}
}

func TestTaskStoreCleanupEvictsExpired(t *testing.T) {
	store := NewTaskStore(10 * time.Millisecond)
	old := &Task{ID: "old", Status: StatusCompleted, UpdatedAt: time.Now().Add(-time.Minute)}
	fresh := &Task{ID: "fresh", Status: StatusQueued, UpdatedAt: time.Now()}
	store.Put(old)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Fatalf("expired task not evicted")
	}
	if store.Get("fresh") == nil {
		t.Fatalf("fresh task evicted")
	}
	if got := len(store.List()); got != 1 {
		t.Fatalf("expected 1 live task, got %d", got)
	}
}

func TestTaskStoreCleanupConcurrentWithUpdates(t *testing.T) {
	store := NewTaskStore(time.Hour)
	now := time.Now()
	task := &Task{ID: "task_abc", Kind: "single", Status: StatusProcessing, CreatedAt: now, UpdatedAt: now}
	store.Put(task)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			task.SetStatus(StatusProcessing)
			task.AddError("transient")
		}
	}()
	for i := 0; i < 200; i++ {
		store.Cleanup()
	}
	<-done

	if store.Get("task_abc") == nil {
		t.Fatalf("fresh task must survive concurrent cleanup")
	}
}

func TestNewTaskIDFormatAndUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewTaskID(fmt.Sprintf("doc%d.pdf", i))
		if !strings.HasPrefix(id, "task_") || len(id) != len("task_")+12 {
			t.Fatalf("unexpected id format: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id: %q", id)
		}
		seen[id] = true
	}
}
