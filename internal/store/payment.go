package store

import (
	"carelink/internal/model"
	"carelink/internal/storage"
)

type PaymentStore struct {
	db *storage.Store
}

func NewPaymentStore(db *storage.Store) *PaymentStore {
	return &PaymentStore{db: db}
}

func (s *PaymentStore) List() ([]model.Payment, error) {
	return storage.Load[model.Payment](s.db, storage.Payments)
}

func (s *PaymentStore) Append(p model.Payment) error {
	return storage.Update(s.db, storage.Payments, func(payments []model.Payment) ([]model.Payment, error) {
		return append(payments, p), nil
	})
}

// ListForUser returns the payments visible to the given account: caretakers
// see payments they recorded, caregivers see payments made to them. Newest
// first.
func (s *PaymentStore) ListForUser(role, username string) ([]model.Payment, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []model.Payment
	for _, p := range all {
		switch role {
		case model.RoleCaretaker:
			if p.Caretaker == username {
				out = append(out, p)
			}
		case model.RoleCaregiver:
			if p.Caregiver == username {
				out = append(out, p)
			}
		}
	}
	// Reverse to most-recent-first (append order is chronological).
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
