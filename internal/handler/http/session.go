package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/victorverma3/ktpdatabase/pkg/errors"
	"github.com/victorverma3/ktpdatabase/pkg/httputil"
	"github.com/victorverma3/ktpdatabase/pkg/middleware"
)

// SessionHandler exposes the current session's identity to the SPA.
type SessionHandler struct {
	logger *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(logger *slog.Logger) *SessionHandler {
	return &SessionHandler{logger: logger}
}

// CurrentUser handles GET /auth/session
func (h *SessionHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.AuthenticationRequired("no active session"), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}
