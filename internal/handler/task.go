package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"carelink/internal/auth"
	"carelink/internal/model"
	"carelink/internal/store"
	"carelink/internal/task"
	"carelink/internal/websocket"
)

type TaskHandler struct {
	tasks  *store.TaskStore
	users  *store.UserStore
	svc    *task.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewTaskHandler(tasks *store.TaskStore, users *store.UserStore, svc *task.Service, hub *websocket.Hub, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users, svc: svc, hub: hub, logger: logger}
}

func (h *TaskHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

type createTaskRequest struct {
	Caregiver string `json:"caregiver"`
	Skill     string `json:"skill"`
	Time      string `json:"time"` // 24-hour "15:04"
}

// Create schedules a task for a caregiver. The skill must be one the
// caregiver registered with, mirroring the form's dropdown.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	cg, err := h.users.GetByUsername(req.Caregiver)
	if err != nil {
		h.logger.Error("caregiver lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to check caregiver")
		return
	}
	if cg == nil || cg.Role != model.RoleCaregiver {
		writeError(w, http.StatusBadRequest, "caregiver not found")
		return
	}
	if !cg.HasSkills([]string{req.Skill}) {
		writeError(w, http.StatusBadRequest, "caregiver does not offer this skill")
		return
	}

	at, err := time.Parse("15:04", req.Time)
	if err != nil {
		writeError(w, http.StatusBadRequest, "time must be HH:MM")
		return
	}

	t, err := h.svc.Assign(ac.Username, req.Caregiver, req.Skill, at)
	if err != nil {
		h.logger.Error("assign task", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save task")
		return
	}

	h.broadcast(websocket.NewMessage("task", "created", t.ID, map[string]any{
		"caregiver": t.Caregiver,
	}))
	writeJSON(w, http.StatusCreated, t)
}

// List returns the logged-in account's side of the task collection.
// Caretakers may narrow to one caregiver with ?caregiver=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var (
		tasks []model.Task
		err   error
	)
	if ac.Role == model.RoleCaretaker {
		if cg := r.URL.Query().Get("caregiver"); cg != "" {
			tasks, err = h.tasks.ListByCaregiver(cg)
		} else {
			tasks, err = h.tasks.ListByCaretaker(ac.Username)
		}
	} else {
		tasks, err = h.tasks.ListByCaregiver(ac.Username)
	}
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// UpdateStatus lets the assigned caregiver report a task Pending, Completed
// or Missed. The reason survives only for Missed.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id := r.PathValue("id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	switch req.Status {
	case model.TaskPending, model.TaskCompleted, model.TaskMissed:
	default:
		writeError(w, http.StatusBadRequest, "status must be Pending, Completed, or Missed")
		return
	}

	// Ownership is part of the match: a caregiver can only touch their own
	// tasks, and a miss reads as not-found.
	updated, err := h.svc.UpdateStatus(task.Ref{ID: id, Caregiver: ac.Username}, req.Status, req.Reason)
	if err != nil {
		h.logger.Error("update task status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update task")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	h.broadcast(websocket.NewMessage("task", "updated", updated.ID, map[string]any{
		"status": updated.Status,
	}))
	writeJSON(w, http.StatusOK, updated)
}
