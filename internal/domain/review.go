package domain

import "time"

// AnonymousReviewer is the opaque marker substituted for reviewer identity on
// the public read path when the anonymity flag is set.
const AnonymousReviewer = "Anonymous"

// Rating bounds for usefulness, difficulty and overall rating.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is a structured, rated, optionally anonymous evaluation of a
// professor/course pairing. Reviews are append-only: once persisted they are
// never edited or deleted.
type Review struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"course_id"`
	Subject         Subject   `json:"subject"`
	Professor       string    `json:"professor"`
	ProfessorKey    string    `json:"-"`
	Reviewer        string    `json:"reviewer"`
	ReviewerEmail   string    `json:"reviewer_email,omitempty"`
	Anonymous       bool      `json:"anonymous"`
	Usefulness      int       `json:"usefulness"`
	Difficulty      int       `json:"difficulty"`
	Rating          int       `json:"rating"`
	Comment         string    `json:"comment,omitempty"`
	SubmissionToken string    `json:"-"`
	Position        int64     `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

// Redacted returns a copy safe for the public read path: when the anonymity
// flag is set, reviewer name is replaced with the AnonymousReviewer marker and
// the email is cleared. The stored record keeps the original attribution.
func (r Review) Redacted() Review {
	if r.Anonymous {
		r.Reviewer = AnonymousReviewer
		r.ReviewerEmail = ""
	}
	return r
}

// IsValidRating checks whether a rating value is within the allowed range.
func IsValidRating(v int) bool {
	return v >= RatingMin && v <= RatingMax
}

// AggregateStats is the derived count/mean statistics over a set of reviews.
// A zero count yields zero means, never an error.
type AggregateStats struct {
	CourseID      string  `json:"course_id"`
	ProfessorKey  string  `json:"professor_key,omitempty"`
	Count         int64   `json:"count"`
	AvgUsefulness float64 `json:"avg_usefulness"`
	AvgDifficulty float64 `json:"avg_difficulty"`
	AvgRating     float64 `json:"avg_rating"`
}

// NewAggregateStats computes means from running sums. It is the single place
// where sums become averages so rounding behavior stays consistent.
func NewAggregateStats(courseID, professorKey string, count, sumUsefulness, sumDifficulty, sumRating int64) AggregateStats {
	stats := AggregateStats{
		CourseID:     courseID,
		ProfessorKey: professorKey,
		Count:        count,
	}
	if count > 0 {
		stats.AvgUsefulness = float64(sumUsefulness) / float64(count)
		stats.AvgDifficulty = float64(sumDifficulty) / float64(count)
		stats.AvgRating = float64(sumRating) / float64(count)
	}
	return stats
}
