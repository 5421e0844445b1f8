package model

import "time"

// ChatMessage is a directed message between two usernames. Append-only.
type ChatMessage struct {
	ID        string    `json:"id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Between reports whether the message belongs to the conversation between
// a and b, in either direction.
func (m ChatMessage) Between(a, b string) bool {
	return (m.From == a && m.To == b) || (m.From == b && m.To == a)
}
