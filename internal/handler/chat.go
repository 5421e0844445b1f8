package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"carelink/internal/auth"
	"carelink/internal/chat"
	"carelink/internal/model"
	"carelink/internal/store"
	"carelink/internal/websocket"
)

type ChatHandler struct {
	svc    *chat.Service
	users  *store.UserStore
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewChatHandler(svc *chat.Service, users *store.UserStore, hub *websocket.Hub, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, users: users, hub: hub, logger: logger}
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send appends a message to the chat log and delivers it live to both
// participants' connections. A message that trims to empty is rejected
// without writing anything.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	recipient, err := h.users.GetByUsername(req.To)
	if err != nil {
		h.logger.Error("recipient lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check recipient")
		return
	}
	if recipient == nil {
		writeError(w, http.StatusBadRequest, "recipient not found")
		return
	}

	msg, err := h.svc.Send(ac.Username, req.To, req.Message)
	if err != nil {
		h.logger.Error("send message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save message")
		return
	}
	if msg == nil {
		writeValidationErrors(w, []string{"Message cannot be empty."})
		return
	}

	if h.hub != nil {
		h.hub.SendTo(websocket.NewMessage("chat", "message", msg.ID, map[string]any{
			"from":    msg.From,
			"to":      msg.To,
			"message": msg.Message,
		}), msg.From, msg.To)
	}
	writeJSON(w, http.StatusCreated, msg)
}

// Conversation returns every message between the logged-in user and the
// named peer, oldest first.
func (h *ChatHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	peer := r.PathValue("username")

	msgs, err := h.svc.Conversation(ac.Username, peer)
	if err != nil {
		h.logger.Error("load conversation", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
