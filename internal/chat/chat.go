package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"carelink/internal/model"
	"carelink/internal/store"
)

// Service appends and reads the append-only chat log.
type Service struct {
	messages *store.MessageStore
	now      func() time.Time
}

func NewService(messages *store.MessageStore) *Service {
	return &Service{messages: messages, now: time.Now}
}

// Send appends a message from one user to another. The text is trimmed;
// a message that trims to empty is a no-op and returns nil without writing.
func (s *Service) Send(from, to, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	m := model.ChatMessage{
		ID:        uuid.NewString(),
		From:      from,
		To:        to,
		Message:   text,
		Timestamp: s.now(),
	}
	if err := s.messages.Append(m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Conversation returns every message between the two users in either
// direction, in original append order.
func (s *Service) Conversation(a, b string) ([]model.ChatMessage, error) {
	return s.messages.Conversation(a, b)
}
