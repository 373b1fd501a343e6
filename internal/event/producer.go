package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pkgkafka "github.com/victorverma3/ktpdatabase/pkg/kafka"

	"github.com/victorverma3/ktpdatabase/internal/domain"
)

// Kafka topic constants for review domain events.
var (
	TopicReviewSubmitted = pkgkafka.Topic("review", "submitted")
)

// Aggregate type constant.
const AggregateTypeReview = "review"

// Source identifier for events originating from the review portal.
const SourceReviewPortal = "review-portal"

// ReviewSubmittedData is the payload for a review.submitted event. It carries
// the canonical professor key rather than reviewer identity so downstream
// consumers never see attribution for anonymous reviews.
type ReviewSubmittedData struct {
	ReviewID     string    `json:"review_id"`
	CourseID     string    `json:"course_id"`
	Subject      string    `json:"subject"`
	ProfessorKey string    `json:"professor_key"`
	Usefulness   int       `json:"usefulness"`
	Difficulty   int       `json:"difficulty"`
	Rating       int       `json:"rating"`
	Anonymous    bool      `json:"anonymous"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Producer publishes review domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the review portal.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a review.submitted event. The aggregate ID
// is the course identifier so all events for one course share a partition.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, review *domain.Review) error {
	data := ReviewSubmittedData{
		ReviewID:     review.ID,
		CourseID:     review.CourseID,
		Subject:      string(review.Subject),
		ProfessorKey: review.ProfessorKey,
		Usefulness:   review.Usefulness,
		Difficulty:   review.Difficulty,
		Rating:       review.Rating,
		Anonymous:    review.Anonymous,
		SubmittedAt:  review.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(TopicReviewSubmitted, review.CourseID, AggregateTypeReview, SourceReviewPortal, data)
	if err != nil {
		return fmt.Errorf("create review.submitted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicReviewSubmitted, event); err != nil {
		return fmt.Errorf("publish review.submitted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published review.submitted event",
		slog.String("review_id", review.ID),
		slog.String("course_id", review.CourseID),
	)

	return nil
}
