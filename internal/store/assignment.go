package store

import (
	"carelink/internal/model"
	"carelink/internal/storage"
)

type AssignmentStore struct {
	db *storage.Store
}

func NewAssignmentStore(db *storage.Store) *AssignmentStore {
	return &AssignmentStore{db: db}
}

func (s *AssignmentStore) List() ([]model.Assignment, error) {
	return storage.Load[model.Assignment](s.db, storage.Assignments)
}

// Append adds an assignment unconditionally; duplicates for the same pair
// are allowed by design of the record model.
func (s *AssignmentStore) Append(a model.Assignment) error {
	return storage.Update(s.db, storage.Assignments, func(assignments []model.Assignment) ([]model.Assignment, error) {
		return append(assignments, a), nil
	})
}

func (s *AssignmentStore) ListByCaretaker(caretaker string) ([]model.Assignment, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []model.Assignment
	for _, a := range all {
		if a.Caretaker == caretaker {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *AssignmentStore) ListByCaregiver(caregiver string) ([]model.Assignment, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []model.Assignment
	for _, a := range all {
		if a.Caregiver == caregiver {
			out = append(out, a)
		}
	}
	return out, nil
}

// FirstByCaregiver returns the earliest assignment referencing the caregiver,
// or nil. The caregiver dashboard treats this as "my caretaker".
func (s *AssignmentStore) FirstByCaregiver(caregiver string) (*model.Assignment, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Caregiver == caregiver && all[i].Caretaker != "" {
			return &all[i], nil
		}
	}
	return nil, nil
}
