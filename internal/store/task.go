package store

import (
	"carelink/internal/model"
	"carelink/internal/storage"
)

type TaskStore struct {
	db *storage.Store
}

func NewTaskStore(db *storage.Store) *TaskStore {
	return &TaskStore{db: db}
}

func (s *TaskStore) List() ([]model.Task, error) {
	tasks, err := storage.Load[model.Task](s.db, storage.Tasks)
	if err != nil {
		return nil, err
	}
	// Records written before the status field existed default to Pending.
	for i := range tasks {
		if tasks[i].Status == "" {
			tasks[i].Status = model.TaskPending
		}
	}
	return tasks, nil
}

func (s *TaskStore) Append(t model.Task) error {
	return storage.Update(s.db, storage.Tasks, func(tasks []model.Task) ([]model.Task, error) {
		return append(tasks, t), nil
	})
}

func (s *TaskStore) ListByCaretaker(caretaker string) ([]model.Task, error) {
	return s.filter(func(t model.Task) bool { return t.Caretaker == caretaker })
}

func (s *TaskStore) ListByCaregiver(caregiver string) ([]model.Task, error) {
	return s.filter(func(t model.Task) bool { return t.Caregiver == caregiver })
}

func (s *TaskStore) filter(keep func(model.Task) bool) ([]model.Task, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []model.Task
	for _, t := range all {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// UpdateFirst applies apply to the first task matching match and persists the
// whole collection, all under the collection lock. Returns the updated task,
// or nil if nothing matched (nothing is written in that case).
func (s *TaskStore) UpdateFirst(match func(model.Task) bool, apply func(*model.Task)) (*model.Task, error) {
	var updated *model.Task
	err := storage.Update(s.db, storage.Tasks, func(tasks []model.Task) ([]model.Task, error) {
		for i := range tasks {
			if match(tasks[i]) {
				apply(&tasks[i])
				t := tasks[i]
				updated = &t
				break
			}
		}
		if updated == nil {
			return tasks, errNoWrite
		}
		return tasks, nil
	})
	if err == errNoWrite {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
