package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"carelink/internal/auth"
	"carelink/internal/fee"
	"carelink/internal/model"
	"carelink/internal/websocket"
)

type PaymentHandler struct {
	svc    *fee.Service
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewPaymentHandler(svc *fee.Service, hub *websocket.Hub, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, hub: hub, logger: logger}
}

// Skills returns the static skill-rate table for the calculator and the
// registration forms.
func (h *PaymentHandler) Skills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"skills": fee.SkillOptions,
		"rates":  fee.Rates,
	})
}

type feeRequest struct {
	Caregiver string   `json:"caregiver"`
	Skills    []string `json:"skills"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// Quote computes the fee for a skill set over a date range without saving
// anything.
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeFeeRequest(w, r, false)
	if !ok {
		return
	}

	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	q, err := fee.Compute(req.Skills, start, end)
	if errors.Is(err, fee.ErrEndBeforeStart) {
		writeValidationErrors(w, []string{"End Date cannot be earlier than Joining Date."})
		return
	}
	if err != nil {
		h.logger.Error("compute fee", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute fee")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Create computes the fee and saves a payment record for the logged-in
// caretaker.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	req, ok := h.decodeFeeRequest(w, r, true)
	if !ok {
		return
	}

	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)
	p, err := h.svc.SavePayment(ac.Username, req.Caregiver, req.Skills, start, end)
	if errors.Is(err, fee.ErrEndBeforeStart) {
		writeValidationErrors(w, []string{"End Date cannot be earlier than Joining Date."})
		return
	}
	if err != nil {
		h.logger.Error("save payment", "error", err)
		writeError(w, http.StatusInternalServerError, "Error saving payment record.")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(websocket.NewMessage("payment", "created", p.ID, map[string]any{
			"caretaker": p.Caretaker,
			"caregiver": p.Caregiver,
			"total_fee": p.TotalFee,
		}))
	}
	writeJSON(w, http.StatusCreated, p)
}

// List returns the account's payment history, most recent first.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	payments, err := h.svc.History(ac.Role, ac.Username)
	if err != nil {
		h.logger.Error("list payments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list payments")
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) decodeFeeRequest(w http.ResponseWriter, r *http.Request, needCaregiver bool) (feeRequest, bool) {
	var req feeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return req, false
	}
	if needCaregiver && req.Caregiver == "" {
		writeError(w, http.StatusBadRequest, "caregiver is required")
		return req, false
	}
	if _, err := parseDate(req.StartDate); err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return req, false
	}
	if _, err := parseDate(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return req, false
	}
	return req, true
}
