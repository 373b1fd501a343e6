package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/victorverma3/ktpdatabase/pkg/database"
	apperrors "github.com/victorverma3/ktpdatabase/pkg/errors"
	"github.com/victorverma3/ktpdatabase/pkg/pagination"

	"github.com/victorverma3/ktpdatabase/internal/domain"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(db database.DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// courseAggregateKey is the professor_key value of the course-level aggregate
// row. The service rejects submissions whose professor key canonicalizes to
// "" and the reviews table forbids them, so a professor row cannot land here.
const courseAggregateKey = ""

const upsertAggregateQuery = `
	INSERT INTO review_aggregates (
		course_id, professor_key, review_count,
		sum_usefulness, sum_difficulty, sum_rating
	) VALUES ($1, $2, 1, $3, $4, $5)
	ON CONFLICT (course_id, professor_key) DO UPDATE
	SET review_count   = review_aggregates.review_count + 1,
	    sum_usefulness = review_aggregates.sum_usefulness + EXCLUDED.sum_usefulness,
	    sum_difficulty = review_aggregates.sum_difficulty + EXCLUDED.sum_difficulty,
	    sum_rating     = review_aggregates.sum_rating + EXCLUDED.sum_rating`

// Insert appends a review and updates both aggregate rows in a single
// transaction. The row-level locks taken by the aggregate upserts serialize
// concurrent submissions to the same course, so no update is ever lost; the
// commit makes the review and both aggregates visible together or not at all.
// The database assigns created_at, so timestamps never run backwards relative
// to position order.
func (r *ReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.StorageUnavailable(fmt.Errorf("begin review transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertQuery := `
		INSERT INTO reviews (
			id, course_id, subject, professor, professor_key,
			reviewer, reviewer_email, anonymous,
			usefulness, difficulty, rating, comment,
			submission_token
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''))
		RETURNING position, created_at`

	err = tx.QueryRow(ctx, insertQuery,
		review.ID,
		review.CourseID,
		review.Subject,
		review.Professor,
		review.ProfessorKey,
		review.Reviewer,
		review.ReviewerEmail,
		review.Anonymous,
		review.Usefulness,
		review.Difficulty,
		review.Rating,
		review.Comment,
		review.SubmissionToken,
	).Scan(&review.Position, &review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("review", "submission_token", review.SubmissionToken)
		}
		return fmt.Errorf("insert review: %w", err)
	}

	// Course-level aggregate, then the (course, professor) aggregate.
	if _, err := tx.Exec(ctx, upsertAggregateQuery,
		review.CourseID, courseAggregateKey,
		review.Usefulness, review.Difficulty, review.Rating,
	); err != nil {
		return fmt.Errorf("upsert course aggregate: %w", err)
	}

	if _, err := tx.Exec(ctx, upsertAggregateQuery,
		review.CourseID, review.ProfessorKey,
		review.Usefulness, review.Difficulty, review.Rating,
	); err != nil {
		return fmt.Errorf("upsert professor aggregate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.StorageUnavailable(fmt.Errorf("commit review transaction: %w", err))
	}

	return nil
}

// ListByCourse returns reviews for a course in submission order with the
// total count.
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID string, params pagination.Params) ([]domain.Review, int, error) {
	query := `
		SELECT id, course_id, subject, professor, professor_key,
		       reviewer, reviewer_email, anonymous,
		       usefulness, difficulty, rating, comment,
		       COALESCE(submission_token, ''), position, created_at,
		       count(*) OVER() AS total_count
		FROM reviews
		WHERE course_id = $1
		ORDER BY position ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, courseID, params.PerPage, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var (
		reviews    []domain.Review
		totalCount int
	)

	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.CourseID,
			&rv.Subject,
			&rv.Professor,
			&rv.ProfessorKey,
			&rv.Reviewer,
			&rv.ReviewerEmail,
			&rv.Anonymous,
			&rv.Usefulness,
			&rv.Difficulty,
			&rv.Rating,
			&rv.Comment,
			&rv.SubmissionToken,
			&rv.Position,
			&rv.CreatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate review rows: %w", err)
	}

	if reviews == nil {
		reviews = []domain.Review{}
	}

	return reviews, totalCount, nil
}

// ListProfessorsBySubject returns one display name per canonical professor
// key for a subject. The earliest spelling submitted wins.
func (r *ReviewRepository) ListProfessorsBySubject(ctx context.Context, subject domain.Subject) ([]string, error) {
	query := `
		SELECT DISTINCT ON (professor_key) professor
		FROM reviews
		WHERE subject = $1
		ORDER BY professor_key, position ASC`

	rows, err := r.db.Query(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan professor row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate professor rows: %w", err)
	}

	return names, nil
}

// Aggregate reads the aggregate row for a course, or for a (course, professor)
// pair when professorKey is non-empty. Missing row means no reviews yet.
func (r *ReviewRepository) Aggregate(ctx context.Context, courseID, professorKey string) (domain.AggregateStats, error) {
	query := `
		SELECT review_count, sum_usefulness, sum_difficulty, sum_rating
		FROM review_aggregates
		WHERE course_id = $1 AND professor_key = $2`

	var count, sumUsefulness, sumDifficulty, sumRating int64
	err := r.db.QueryRow(ctx, query, courseID, professorKey).Scan(
		&count, &sumUsefulness, &sumDifficulty, &sumRating,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewAggregateStats(courseID, professorKey, 0, 0, 0, 0), nil
		}
		return domain.AggregateStats{}, fmt.Errorf("read aggregate: %w", err)
	}

	return domain.NewAggregateStats(courseID, professorKey, count, sumUsefulness, sumDifficulty, sumRating), nil
}

// isUniqueViolation checks if the error is a PostgreSQL unique constraint violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
