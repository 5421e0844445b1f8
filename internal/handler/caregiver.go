package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"carelink/internal/auth"
	"carelink/internal/fee"
	"carelink/internal/match"
	"carelink/internal/model"
	"carelink/internal/store"
	"carelink/internal/websocket"
)

type CaregiverHandler struct {
	users       *store.UserStore
	assignments *store.AssignmentStore
	matcher     *match.Service
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewCaregiverHandler(users *store.UserStore, assignments *store.AssignmentStore, matcher *match.Service, hub *websocket.Hub, logger *slog.Logger) *CaregiverHandler {
	return &CaregiverHandler{users: users, assignments: assignments, matcher: matcher, hub: hub, logger: logger}
}

func (h *CaregiverHandler) broadcast(msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(msg)
	}
}

// Search filters caregivers by required skills and location.
// ?skills=Bathing,Feeding requires every listed skill; ?location=Any (or
// absent) matches all locations.
func (h *CaregiverHandler) Search(w http.ResponseWriter, r *http.Request) {
	caregivers, err := h.users.Caregivers()
	if err != nil {
		h.logger.Error("list caregivers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list caregivers")
		return
	}

	var required []string
	if raw := r.URL.Query().Get("skills"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				required = append(required, s)
			}
		}
	}
	location := r.URL.Query().Get("location")
	if location == "" {
		location = match.AnyLocation
	}

	matched := match.FindCaregivers(caregivers, required, location)
	out := make([]model.User, 0, len(matched))
	for _, cg := range matched {
		out = append(out, cg.Public())
	}
	writeJSON(w, http.StatusOK, out)
}

// Options returns the values the assignment form offers: known caregiver
// locations and skills, plus the duration labels.
func (h *CaregiverHandler) Options(w http.ResponseWriter, r *http.Request) {
	caregivers, err := h.users.Caregivers()
	if err != nil {
		h.logger.Error("list caregivers", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list caregivers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locations": append([]string{match.AnyLocation}, match.LocationOptions(caregivers)...),
		"skills":    match.SkillOptions(caregivers),
		"durations": match.Durations,
		"rates":     fee.Rates,
	})
}

type assignRequest struct {
	Caregiver   string `json:"caregiver"`
	Duration    string `json:"duration"`
	JoiningDate string `json:"joining_date"`
}

// Assign creates an assignment of a caregiver to the logged-in caretaker.
func (h *CaregiverHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Caregiver == "" {
		writeError(w, http.StatusBadRequest, "caregiver is required")
		return
	}
	joining, err := parseDate(req.JoiningDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "joining_date must be YYYY-MM-DD")
		return
	}

	a, err := h.matcher.Assign(ac.Username, req.Caregiver, req.Duration, joining)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeError(w, http.StatusBadRequest, "caregiver not found")
			return
		}
		h.logger.Error("assign caregiver", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save assignment")
		return
	}

	h.broadcast(websocket.NewMessage("assignment", "created", a.ID, map[string]any{
		"caretaker": a.Caretaker,
		"caregiver": a.Caregiver,
	}))
	writeJSON(w, http.StatusCreated, a)
}

// ListAssignments returns the logged-in account's side of the assignment
// collection: created assignments for caretakers, received ones for
// caregivers.
func (h *CaregiverHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	var (
		assignments []model.Assignment
		err         error
	)
	if ac.Role == model.RoleCaretaker {
		assignments, err = h.assignments.ListByCaretaker(ac.Username)
	} else {
		assignments, err = h.assignments.ListByCaregiver(ac.Username)
	}
	if err != nil {
		h.logger.Error("list assignments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list assignments")
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	writeJSON(w, http.StatusOK, assignments)
}

// MyCaretaker reports the caretaker assigned to the logged-in caregiver.
// Having none is an informational empty state, not an error.
func (h *CaregiverHandler) MyCaretaker(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	a, err := h.assignments.FirstByCaregiver(ac.Username)
	if err != nil {
		h.logger.Error("find assignment", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assignment")
		return
	}
	if a == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"assigned": false,
			"message":  "You have not been assigned a caretaker yet.",
		})
		return
	}

	name, contact, location := a.Caretaker, "Not Provided", "Unknown"
	if ct, err := h.users.GetByUsername(a.Caretaker); err != nil {
		h.logger.Error("caretaker lookup", "error", err)
	} else if ct != nil {
		if ct.Name != "" {
			name = ct.Name
		}
		if ct.Contact != "" {
			contact = ct.Contact
		}
		if ct.Location != "" {
			location = ct.Location
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assigned": true,
		"caretaker": map[string]string{
			"username": a.Caretaker,
			"name":     name,
			"contact":  contact,
			"location": location,
		},
		"assignment": a,
	})
}
