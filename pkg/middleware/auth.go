package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKeyType string

const (
	userIDKey    contextKeyType = "user_id"
	userNameKey  contextKeyType = "user_name"
	userEmailKey contextKeyType = "user_email"
)

// SessionUser is the identity extracted from a valid session token.
type SessionUser struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenValidator validates a bearer token and returns the session user. The
// session gateway injects its own validation logic here.
type TokenValidator func(token string) (*SessionUser, error)

// Auth validates the Authorization header and injects the session user into
// the request context. Requests without a valid session get a 401 with code
// AUTHENTICATION_REQUIRED; the SPA redirects to its login error route on that
// code.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				writeAuthError(w, "invalid authorization header format")
				return
			}

			user, err := validate(parts[1])
			if err != nil {
				writeAuthError(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.UserID)
			ctx = context.WithValue(ctx, userNameKey, user.Name)
			ctx = context.WithValue(ctx, userEmailKey, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext extracts the session user's ID, or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// UserFromContext extracts the full session user; ok is false when the
// request carried no valid session.
func UserFromContext(ctx context.Context) (SessionUser, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return SessionUser{}, false
	}
	name, _ := ctx.Value(userNameKey).(string)
	email, _ := ctx.Value(userEmailKey).(string)
	return SessionUser{UserID: id, Name: name, Email: email}, true
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "AUTHENTICATION_REQUIRED",
		"message": message,
	})
}
