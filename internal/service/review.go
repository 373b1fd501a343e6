package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/victorverma3/ktpdatabase/pkg/errors"
	"github.com/victorverma3/ktpdatabase/pkg/middleware"
	"github.com/victorverma3/ktpdatabase/pkg/pagination"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/internal/repository"
)

// ProfessorCatalog is the read-only boundary with the external course catalog.
// internal/catalog.Client satisfies this.
type ProfessorCatalog interface {
	ListKnownProfessors(ctx context.Context, subject domain.Subject) ([]domain.Professor, error)
}

// EventPublisher publishes review domain events. internal/event.Producer
// satisfies this.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, review *domain.Review) error
}

// ReviewService implements the business logic for review submission,
// professor directory lookups, and aggregate reads.
type ReviewService struct {
	repo     repository.ReviewRepository
	cache    repository.StatsCache
	catalog  ProfessorCatalog
	producer EventPublisher
	logger   *slog.Logger
}

// NewReviewService creates a new review service. catalog may be nil when no
// external course catalog is configured.
func NewReviewService(
	repo repository.ReviewRepository,
	cache repository.StatsCache,
	catalog ProfessorCatalog,
	producer EventPublisher,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		repo:     repo,
		cache:    cache,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
	}
}

// SubmitReviewInput holds the parameters for submitting a review. The
// reviewer's identity comes from the session, never from the body; any
// client-supplied timestamp is ignored.
type SubmitReviewInput struct {
	CourseID        string `json:"id" validate:"required,min=5"`
	Professor       string `json:"professor" validate:"required"`
	Usefulness      int    `json:"usefulness" validate:"required,min=1,max=5"`
	Difficulty      int    `json:"difficulty" validate:"required,min=1,max=5"`
	Rating          int    `json:"rating" validate:"required,min=1,max=5"`
	Comment         string `json:"review"`
	Anonymous       bool   `json:"anon"`
	SubmissionToken string `json:"submission_token"`
}

// Submit validates, resolves, and persists a review, then invalidates the
// course's cached stats and publishes a review.submitted event. The returned
// review carries the server-assigned ID, position, and timestamp.
//
// Completeness and range are re-checked here even though the handler already
// validated the request body: nothing incomplete may reach storage regardless
// of the caller.
func (s *ReviewService) Submit(ctx context.Context, user middleware.SessionUser, input *SubmitReviewInput) (*domain.Review, error) {
	if user.UserID == "" {
		return nil, apperrors.AuthenticationRequired("a signed-in session is required to submit a review")
	}
	if input == nil {
		return nil, apperrors.ValidationFailed("review")
	}
	if input.Professor == "" {
		return nil, apperrors.ValidationFailed("professor")
	}
	professorKey := domain.ProfessorKey(input.Professor)
	if professorKey == "" {
		// A name with no letters or digits canonicalizes to "", which is
		// reserved for the course-wide aggregate row.
		return nil, apperrors.ValidationFailed("professor")
	}
	if input.Usefulness == 0 {
		return nil, apperrors.ValidationFailed("usefulness")
	}
	if input.Difficulty == 0 {
		return nil, apperrors.ValidationFailed("difficulty")
	}
	if input.Rating == 0 {
		return nil, apperrors.ValidationFailed("rating")
	}
	if !domain.IsValidRating(input.Usefulness) {
		return nil, apperrors.InvalidRating("usefulness", input.Usefulness)
	}
	if !domain.IsValidRating(input.Difficulty) {
		return nil, apperrors.InvalidRating("difficulty", input.Difficulty)
	}
	if !domain.IsValidRating(input.Rating) {
		return nil, apperrors.InvalidRating("rating", input.Rating)
	}

	subject, ok := domain.ResolveSubject(input.CourseID)
	if !ok {
		return nil, apperrors.UnresolvedCourse(input.CourseID)
	}

	review := &domain.Review{
		ID:              uuid.New().String(),
		CourseID:        input.CourseID,
		Subject:         subject,
		Professor:       input.Professor,
		ProfessorKey:    professorKey,
		Reviewer:        user.Name,
		ReviewerEmail:   user.Email,
		Anonymous:       input.Anonymous,
		Usefulness:      input.Usefulness,
		Difficulty:      input.Difficulty,
		Rating:          input.Rating,
		Comment:         input.Comment,
		SubmissionToken: input.SubmissionToken,
	}

	if err := s.repo.Insert(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	if err := s.cache.InvalidateCourse(ctx, review.CourseID, review.Subject); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate course cache",
			slog.String("course_id", review.CourseID),
			slog.String("error", err.Error()),
		)
		// Stale entries expire with the TTL; do not fail the submission.
	}

	if err := s.producer.PublishReviewSubmitted(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
			slog.String("review_id", review.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", review.ID),
		slog.String("course_id", review.CourseID),
		slog.String("professor_key", review.ProfessorKey),
		slog.Bool("anonymous", review.Anonymous),
	)

	return review, nil
}

// ListCourseReviews returns a page of reviews for a course in submission
// order, with anonymous attribution redacted, plus the course-level aggregate.
func (s *ReviewService) ListCourseReviews(ctx context.Context, courseID string, params pagination.Params) ([]domain.Review, int, domain.AggregateStats, error) {
	reviews, total, err := s.repo.ListByCourse(ctx, courseID, params)
	if err != nil {
		return nil, 0, domain.AggregateStats{}, fmt.Errorf("list course reviews: %w", err)
	}

	// Anonymity is applied here, at the public read boundary. Storage keeps
	// the original attribution for moderation.
	for i := range reviews {
		reviews[i] = reviews[i].Redacted()
	}

	stats, err := s.CourseAggregate(ctx, courseID, "")
	if err != nil {
		return nil, 0, domain.AggregateStats{}, err
	}

	return reviews, total, stats, nil
}

// CourseAggregate returns count and per-dimension means for a course, or for
// a single professor of the course when professorName is non-empty. Courses
// with no reviews yield zero-count stats.
func (s *ReviewService) CourseAggregate(ctx context.Context, courseID, professorName string) (domain.AggregateStats, error) {
	professorKey := ""
	if professorName != "" {
		professorKey = domain.ProfessorKey(professorName)
	}

	if cached, err := s.cache.GetAggregate(ctx, courseID, professorKey); err != nil {
		s.logger.WarnContext(ctx, "aggregate cache read failed",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
	} else if cached != nil {
		return *cached, nil
	}

	stats, err := s.repo.Aggregate(ctx, courseID, professorKey)
	if err != nil {
		return domain.AggregateStats{}, fmt.Errorf("course aggregate: %w", err)
	}

	if err := s.cache.SetAggregate(ctx, stats); err != nil {
		s.logger.WarnContext(ctx, "aggregate cache write failed",
			slog.String("course_id", courseID),
			slog.String("error", err.Error()),
		)
	}

	return stats, nil
}

// ListProfessors returns the distinct professors associated with a subject,
// derived from review history and, when a catalog is configured, merged with
// the catalog roster. An unknown subject or one with no data yields an empty
// list, never an error.
func (s *ReviewService) ListProfessors(ctx context.Context, subject domain.Subject) ([]domain.Professor, error) {
	if !domain.IsValidSubject(subject) {
		return []domain.Professor{}, nil
	}

	if cached, err := s.cache.GetProfessors(ctx, subject); err != nil {
		s.logger.WarnContext(ctx, "professor cache read failed",
			slog.String("subject", string(subject)),
			slog.String("error", err.Error()),
		)
	} else if cached != nil {
		return cached, nil
	}

	names, err := s.repo.ListProfessorsBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}

	if s.catalog != nil {
		roster, err := s.catalog.ListKnownProfessors(ctx, subject)
		if err != nil {
			// The catalog is a supplement; degrade to review-derived names.
			s.logger.WarnContext(ctx, "catalog roster unavailable",
				slog.String("subject", string(subject)),
				slog.String("error", err.Error()),
			)
		} else {
			for _, p := range roster {
				names = append(names, p.Name)
			}
		}
	}

	professors := domain.DedupeProfessors(names)

	if err := s.cache.SetProfessors(ctx, subject, professors); err != nil {
		s.logger.WarnContext(ctx, "professor cache write failed",
			slog.String("subject", string(subject)),
			slog.String("error", err.Error()),
		)
	}

	return professors, nil
}
