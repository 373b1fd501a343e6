package repository

import (
	"context"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/pkg/pagination"
)

// ReviewRepository defines the interface for review persistence operations.
// Reviews are append-only: there is no update or delete path.
type ReviewRepository interface {
	// Insert atomically appends a review and updates the (course) and
	// (course, professor) aggregate rows. On success the review's Position
	// is filled in from the store.
	Insert(ctx context.Context, review *domain.Review) error

	// ListByCourse returns reviews for a course ordered by submission
	// position ascending, along with the total count. Records are returned
	// as stored; redaction of anonymous attribution happens at the service
	// read boundary.
	ListByCourse(ctx context.Context, courseID string, params pagination.Params) ([]domain.Review, int, error)

	// ListProfessorsBySubject returns the distinct professor display names
	// referenced by reviews in a subject, one per canonical key.
	ListProfessorsBySubject(ctx context.Context, subject domain.Subject) ([]string, error)

	// Aggregate returns count and per-dimension means for a course, or for a
	// (course, professor) pair when professorKey is non-empty. A course with
	// no reviews yields zero-count stats, not an error.
	Aggregate(ctx context.Context, courseID, professorKey string) (domain.AggregateStats, error)
}

// StatsCache defines the read-through cache for aggregates and professor
// directories. A nil result with nil error is a cache miss.
type StatsCache interface {
	GetAggregate(ctx context.Context, courseID, professorKey string) (*domain.AggregateStats, error)
	SetAggregate(ctx context.Context, stats domain.AggregateStats) error

	GetProfessors(ctx context.Context, subject domain.Subject) ([]domain.Professor, error)
	SetProfessors(ctx context.Context, subject domain.Subject, professors []domain.Professor) error

	// InvalidateCourse drops cached aggregates for a course and the professor
	// directory for its subject after a review submission.
	InvalidateCourse(ctx context.Context, courseID string, subject domain.Subject) error
}
