package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/victorverma3/ktpdatabase/pkg/errors"
	"github.com/victorverma3/ktpdatabase/pkg/httputil"
	"github.com/victorverma3/ktpdatabase/pkg/middleware"
	"github.com/victorverma3/ktpdatabase/pkg/pagination"
	"github.com/victorverma3/ktpdatabase/pkg/validator"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/internal/service"
)

// ReviewHandler handles HTTP requests for the academics endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProfessorsRequest is the JSON request body for the professor directory.
type ListProfessorsRequest struct {
	Subject string `json:"subject" validate:"required"`
}

// reviewsPage is the reviews listing envelope: the page plus the course
// aggregate, so the SPA renders both from a single request.
type reviewsPage struct {
	pagination.Result[domain.Review]
	Stats domain.AggregateStats `json:"stats"`
}

// ListProfessors handles POST /academics/courses/professors
func (h *ReviewHandler) ListProfessors(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req ListProfessorsRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	// An unknown subject is an empty directory, not an error: the dropdown
	// just renders nothing.
	professors, err := h.service.ListProfessors(r.Context(), domain.Subject(req.Subject))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: professors})
}

// AddReview handles POST /academics/courses/add-review
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, r, apperrors.AuthenticationRequired("a signed-in session is required to submit a review"), h.logger)
		return
	}

	var req service.SubmitReviewInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	// Resolve the course prefix before touching the service so a typo'd
	// course ID reads as UNKNOWN_SUBJECT, not a storage failure.
	if _, ok := domain.ResolveSubject(req.CourseID); !ok {
		httputil.WriteError(w, r, apperrors.UnknownSubject(req.CourseID), h.logger)
		return
	}

	review, err := h.service.Submit(r.Context(), user, &req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// ListCourseReviews handles GET /academics/courses/{courseID}/reviews
func (h *ReviewHandler) ListCourseReviews(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("course id is required"), h.logger)
		return
	}

	params := pagination.FromRequest(r)

	reviews, total, stats, err := h.service.ListCourseReviews(r.Context(), courseID, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviewsPage{
		Result: pagination.NewResult(reviews, total, params),
		Stats:  stats,
	})
}

// CourseStats handles GET /academics/courses/{courseID}/stats
func (h *ReviewHandler) CourseStats(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")
	if courseID == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("course id is required"), h.logger)
		return
	}

	professor := r.URL.Query().Get("professor")

	stats, err := h.service.CourseAggregate(r.Context(), courseID, professor)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: stats})
}

// ListSubjects handles GET /academics/subjects
func (h *ReviewHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: domain.Subjects()})
}
