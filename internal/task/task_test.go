package task

import (
	"testing"
	"time"

	"carelink/internal/model"
	"carelink/internal/storage"
	"carelink/internal/store"
)

func setupService(t *testing.T) (*Service, *store.TaskStore) {
	t.Helper()
	db, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ts := store.NewTaskStore(db)
	return NewService(ts), ts
}

func TestAssignDefaults(t *testing.T) {
	svc, ts := setupService(t)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }

	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	task, err := svc.Assign("ct1", "cg1", "Bathing", at)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if task.Status != model.TaskPending {
		t.Errorf("Status = %q, want %q", task.Status, model.TaskPending)
	}
	if task.Time != "09:30 AM" {
		t.Errorf("Time = %q, want %q", task.Time, "09:30 AM")
	}
	if task.Task != "Bathing" || task.Skill != "Bathing" {
		t.Errorf("Task/Skill = %q/%q, want Bathing", task.Task, task.Skill)
	}
	if task.ID == "" {
		t.Error("expected non-empty ID")
	}

	all, err := ts.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 persisted task, got %d", len(all))
	}
}

func TestAssignAfternoonTime(t *testing.T) {
	svc, _ := setupService(t)

	at := time.Date(2024, 5, 1, 15, 5, 0, 0, time.UTC)
	task, err := svc.Assign("ct1", "cg1", "Feeding", at)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if task.Time != "03:05 PM" {
		t.Errorf("Time = %q, want %q", task.Time, "03:05 PM")
	}
}

func TestUpdateStatusCompletedClearsReason(t *testing.T) {
	svc, _ := setupService(t)
	created, err := svc.Assign("ct1", "cg1", "Bathing", time.Now())
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, err := svc.UpdateStatus(Ref{ID: created.ID}, model.TaskCompleted, "ignored text")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated task")
	}
	if updated.Status != model.TaskCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, model.TaskCompleted)
	}
	if updated.Reason != "" {
		t.Errorf("Reason = %q, want empty for non-missed status", updated.Reason)
	}
}

func TestUpdateStatusMissedKeepsReason(t *testing.T) {
	svc, _ := setupService(t)
	created, err := svc.Assign("ct1", "cg1", "Bathing", time.Now())
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, err := svc.UpdateStatus(Ref{ID: created.ID}, model.TaskMissed, "Patient was asleep")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Reason != "Patient was asleep" {
		t.Errorf("Reason = %q, want kept for missed status", updated.Reason)
	}
}

func TestUpdateStatusInvalid(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.UpdateStatus(Ref{ID: "whatever"}, "Done", "")
	if err == nil {
		t.Fatal("expected error for invalid status")
	}
}

func TestUpdateStatusNoMatch(t *testing.T) {
	svc, _ := setupService(t)

	updated, err := svc.UpdateStatus(Ref{ID: "missing"}, model.TaskCompleted, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Errorf("expected nil for no match, got %+v", updated)
	}
}

func TestUpdateStatusScopedToCaregiver(t *testing.T) {
	svc, _ := setupService(t)
	created, err := svc.Assign("ct1", "cg1", "Bathing", time.Now())
	if err != nil {
		t.Fatalf("assign: %v", err)
	}

	// A different caregiver cannot update someone else's task by id.
	updated, err := svc.UpdateStatus(Ref{ID: created.ID, Caregiver: "cg2"}, model.TaskCompleted, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Error("expected nil when caregiver does not own the task")
	}

	updated, err = svc.UpdateStatus(Ref{ID: created.ID, Caregiver: "cg1"}, model.TaskCompleted, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Error("expected owning caregiver to update the task")
	}
}

func TestUpdateStatusNaturalKeyFallback(t *testing.T) {
	svc, ts := setupService(t)

	// A record written before ids existed.
	createdAt := time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)
	legacy := model.Task{
		Caretaker: "ct1",
		Caregiver: "cg1",
		Task:      "Feeding",
		Time:      "10:00 AM",
		Status:    model.TaskPending,
		CreatedAt: createdAt,
	}
	if err := ts.Append(legacy); err != nil {
		t.Fatalf("append: %v", err)
	}

	ref := Ref{
		Caretaker: "ct1",
		Caregiver: "cg1",
		Task:      "Feeding",
		Time:      "10:00 AM",
		CreatedAt: createdAt,
	}
	updated, err := svc.UpdateStatus(ref, model.TaskCompleted, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("expected natural-key match")
	}
	if updated.Status != model.TaskCompleted {
		t.Errorf("Status = %q, want %q", updated.Status, model.TaskCompleted)
	}
}
