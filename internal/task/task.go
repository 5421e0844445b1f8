package task

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"carelink/internal/model"
	"carelink/internal/store"
)

// TimeLayout is the 12-hour clock form stored on task records ("09:30 AM").
const TimeLayout = "03:04 PM"

// Ref identifies the task to update. ID is preferred; the remaining fields
// form the natural-key fallback for records written before ids existed.
// When both ID and Caregiver are set, the caregiver must also match, which
// scopes updates to the reporting caregiver's own tasks.
type Ref struct {
	ID        string
	Caretaker string
	Caregiver string
	Task      string
	Time      string
	CreatedAt time.Time
}

// Service creates tasks and updates their completion status.
type Service struct {
	tasks *store.TaskStore
	now   func() time.Time
}

func NewService(tasks *store.TaskStore) *Service {
	return &Service{tasks: tasks, now: time.Now}
}

// Assign appends a Pending task for the caregiver to perform the skill at
// the scheduled time. No duplicate or overlap check applies.
func (s *Service) Assign(caretaker, caregiver, skill string, at time.Time) (*model.Task, error) {
	t := model.Task{
		ID:        uuid.NewString(),
		Caretaker: caretaker,
		Caregiver: caregiver,
		Task:      skill,
		Skill:     skill,
		Time:      at.Format(TimeLayout),
		Status:    model.TaskPending,
		Reason:    "",
		CreatedAt: s.now(),
	}
	if err := s.tasks.Append(t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatus sets the status of the referenced task. The reason is kept
// only when the new status is Missed and cleared otherwise. Returns nil
// without writing when no task matches the reference.
func (s *Service) UpdateStatus(ref Ref, status, reason string) (*model.Task, error) {
	switch status {
	case model.TaskPending, model.TaskCompleted, model.TaskMissed:
	default:
		return nil, fmt.Errorf("invalid task status %q", status)
	}
	if status != model.TaskMissed {
		reason = ""
	}

	return s.tasks.UpdateFirst(ref.matches, func(t *model.Task) {
		t.Status = status
		t.Reason = reason
	})
}

func (r Ref) matches(t model.Task) bool {
	if r.ID != "" {
		return t.ID == r.ID && (r.Caregiver == "" || t.Caregiver == r.Caregiver)
	}
	return t.ID == "" &&
		t.Caretaker == r.Caretaker &&
		t.Caregiver == r.Caregiver &&
		t.Task == r.Task &&
		t.Time == r.Time &&
		t.CreatedAt.Equal(r.CreatedAt)
}
