package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"carelink/internal/auth"
	"carelink/internal/identity"
	"carelink/internal/model"
	"carelink/internal/store"
)

const sessionCookieName = "carelink_session"

type AuthHandler struct {
	identity *identity.Service
	users    *store.UserStore
	sessions *store.SessionStore
	logger   *slog.Logger
}

func NewAuthHandler(id *identity.Service, users *store.UserStore, sessions *store.SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{identity: id, users: users, sessions: sessions, logger: logger}
}

type registerRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Contact  string   `json:"contact"`
	Skills   []string `json:"skills"`
	Age      int      `json:"age"`
}

func (h *AuthHandler) RegisterCaretaker(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleCaretaker)
}

func (h *AuthHandler) RegisterCaregiver(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleCaregiver)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role string) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if role == model.RoleCaretaker {
		// Age is a hard input bound on the form, not a submit-time check.
		if req.Age < identity.MinAge {
			req.Age = identity.MinAge
		}
		if req.Age > identity.MaxAge {
			req.Age = identity.MaxAge
		}
	}

	user, verrs, err := h.identity.Register(identity.RegisterInput{
		Role:     role,
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Location: req.Location,
		Contact:  req.Contact,
		Skills:   req.Skills,
		Age:      req.Age,
	})
	if err != nil {
		h.logger.Error("register", "role", role, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if len(verrs) > 0 {
		writeValidationErrors(w, verrs)
		return
	}

	writeJSON(w, http.StatusCreated, user.Public())
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Role != model.RoleCaretaker && req.Role != model.RoleCaregiver {
		writeError(w, http.StatusBadRequest, "role must be Caretaker or Caregiver")
		return
	}

	user, err := h.identity.Login(req.Username, req.Password, req.Role)
	if err != nil {
		h.logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials or role mismatch.")
		return
	}

	sess := h.sessions.Create(user.Username, user.Role)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   90 * 24 * 60 * 60, // 90 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	writeJSON(w, http.StatusOK, user.Public())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ac, ok := auth.FromContext(r.Context()); ok {
		h.sessions.Delete(ac.Token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the logged-in account without its password.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "login required")
		return
	}
	user, err := h.users.GetByUsername(ac.Username)
	if err != nil {
		h.logger.Error("me lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}
	writeJSON(w, http.StatusOK, user.Public())
}
