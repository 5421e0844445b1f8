package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"carelink/internal/chat"
	"carelink/internal/fee"
	"carelink/internal/handler"
	"carelink/internal/identity"
	"carelink/internal/match"
	"carelink/internal/middleware"
	"carelink/internal/model"
	"carelink/internal/storage"
	"carelink/internal/store"
	"carelink/internal/task"
	ws "carelink/internal/websocket"
)

// Config holds the server's runtime settings.
type Config struct {
	// AllowedOrigins restricts browser access to the API; empty allows any
	// origin (single-household LAN deployments).
	AllowedOrigins []string
}

type Server struct {
	hub          *ws.Hub
	authH        *handler.AuthHandler
	caregiverH   *handler.CaregiverHandler
	taskH        *handler.TaskHandler
	chatH        *handler.ChatHandler
	paymentH     *handler.PaymentHandler
	sessionStore *store.SessionStore
	rateLimiter  *middleware.RateLimiter
	cfg          Config
	logger       *slog.Logger
}

func New(db *storage.Store, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	userStore := store.NewUserStore(db)
	assignmentStore := store.NewAssignmentStore(db)
	taskStore := store.NewTaskStore(db)
	messageStore := store.NewMessageStore(db)
	paymentStore := store.NewPaymentStore(db)
	sessionStore := store.NewSessionStore()

	identitySvc := identity.NewService(userStore)
	matchSvc := match.NewService(assignmentStore, userStore)
	taskSvc := task.NewService(taskStore)
	chatSvc := chat.NewService(messageStore)
	feeSvc := fee.NewService(paymentStore, userStore)

	return &Server{
		hub:          hub,
		authH:        handler.NewAuthHandler(identitySvc, userStore, sessionStore, logger.With("component", "auth")),
		caregiverH:   handler.NewCaregiverHandler(userStore, assignmentStore, matchSvc, hub, logger.With("component", "match")),
		taskH:        handler.NewTaskHandler(taskStore, userStore, taskSvc, hub, logger.With("component", "task")),
		chatH:        handler.NewChatHandler(chatSvc, userStore, hub, logger.With("component", "chat")),
		paymentH:     handler.NewPaymentHandler(feeSvc, hub, logger.With("component", "payment")),
		sessionStore: sessionStore,
		rateLimiter:  middleware.NewRateLimiter(),
		cfg:          cfg,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /api/skills", s.paymentH.Skills)
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/register/caretaker", s.rateLimitedHandler(s.authH.RegisterCaretaker))
	outerMux.HandleFunc("POST /api/register/caregiver", s.rateLimitedHandler(s.authH.RegisterCaregiver))

	// Protected routes — wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	var h http.Handler = outerMux
	if len(s.cfg.AllowedOrigins) > 0 {
		h = cors.New(cors.Options{
			AllowedOrigins:   s.cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowCredentials: true,
		}).Handler(h)
	} else {
		h = cors.AllowAll().Handler(h)
	}

	return middleware.RequestLogger(s.logger.With("component", "http"))(h)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	caretakerOnly := middleware.RequireRole(model.RoleCaretaker)
	caregiverOnly := middleware.RequireRole(model.RoleCaregiver)

	// Session routes
	mux.HandleFunc("POST /api/logout", s.authH.Logout)
	mux.HandleFunc("GET /api/me", s.authH.Me)

	// Matching + assignment routes (caretaker side)
	mux.Handle("GET /api/caregivers", caretakerOnly(http.HandlerFunc(s.caregiverH.Search)))
	mux.Handle("GET /api/caregivers/options", caretakerOnly(http.HandlerFunc(s.caregiverH.Options)))
	mux.Handle("POST /api/assignments", caretakerOnly(http.HandlerFunc(s.caregiverH.Assign)))
	mux.HandleFunc("GET /api/assignments", s.caregiverH.ListAssignments)
	mux.Handle("GET /api/caretaker", caregiverOnly(http.HandlerFunc(s.caregiverH.MyCaretaker)))

	// Task routes
	mux.Handle("POST /api/tasks", caretakerOnly(http.HandlerFunc(s.taskH.Create)))
	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.Handle("PUT /api/tasks/{id}/status", caregiverOnly(http.HandlerFunc(s.taskH.UpdateStatus)))

	// Chat routes
	mux.HandleFunc("POST /api/chat", s.chatH.Send)
	mux.HandleFunc("GET /api/chat/{username}", s.chatH.Conversation)

	// Payment routes
	mux.Handle("POST /api/payments/quote", caretakerOnly(http.HandlerFunc(s.paymentH.Quote)))
	mux.Handle("POST /api/payments", caretakerOnly(http.HandlerFunc(s.paymentH.Create)))
	mux.HandleFunc("GET /api/payments", s.paymentH.List)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub))
}
