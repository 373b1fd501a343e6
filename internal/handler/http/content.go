package http

import (
	"log/slog"
	"net/http"

	"github.com/victorverma3/ktpdatabase/pkg/httputil"

	"github.com/victorverma3/ktpdatabase/internal/service"
)

// ContentHandler serves the static informational routes: the community
// calendar and the professional-development pages.
type ContentHandler struct {
	service *service.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content HTTP handler.
func NewContentHandler(svc *service.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: svc,
		logger:  logger,
	}
}

// ListCalendarEvents handles GET /calendar/events
func (h *ContentHandler) ListCalendarEvents(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.service.ListCalendarEvents(r.Context()),
	})
}

// ListInternships handles GET /professional/internships
func (h *ContentHandler) ListInternships(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.service.ListInternships(r.Context()),
	})
}

// ListResources handles GET /professional/resources
func (h *ContentHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: h.service.ListResources(r.Context()),
	})
}
