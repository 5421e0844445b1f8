package middleware

import (
	"encoding/json"
	"net/http"

	"carelink/internal/auth"
	"carelink/internal/store"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "carelink_session"

// RequireAuth validates the session cookie and populates AuthContext.
// Unauthenticated requests get a JSON 401; the front end decides navigation.
func RequireAuth(sessions *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			sess := sessions.GetByToken(cookie.Value)
			if sess == nil {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				Username: sess.Username,
				Role:     sess.Role,
				Token:    sess.Token,
			}
			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole blocks accounts whose role doesn't match. The mismatch is a
// blocking notice, not a silent empty view.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if ac.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "Only " + role + "s allowed here."})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "login required"})
}
