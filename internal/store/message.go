package store

import (
	"carelink/internal/model"
	"carelink/internal/storage"
)

type MessageStore struct {
	db *storage.Store
}

func NewMessageStore(db *storage.Store) *MessageStore {
	return &MessageStore{db: db}
}

func (s *MessageStore) List() ([]model.ChatMessage, error) {
	return storage.Load[model.ChatMessage](s.db, storage.Chat)
}

func (s *MessageStore) Append(m model.ChatMessage) error {
	return storage.Update(s.db, storage.Chat, func(msgs []model.ChatMessage) ([]model.ChatMessage, error) {
		return append(msgs, m), nil
	})
}

// Conversation returns the messages exchanged between a and b in either
// direction, preserving append order.
func (s *MessageStore) Conversation(a, b string) ([]model.ChatMessage, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	var out []model.ChatMessage
	for _, m := range all {
		if m.Between(a, b) {
			out = append(out, m)
		}
	}
	return out, nil
}
