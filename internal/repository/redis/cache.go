package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/victorverma3/ktpdatabase/internal/domain"
)

const (
	aggregateKeyPrefix  = "stats:"
	professorsKeyPrefix = "professors:"
)

// StatsCache implements repository.StatsCache using Redis. Entries carry a
// TTL as a safety net; submissions invalidate their course's keys eagerly.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new Redis-backed stats cache.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

func aggregateKey(courseID, professorKey string) string {
	if professorKey == "" {
		return aggregateKeyPrefix + courseID
	}
	return aggregateKeyPrefix + courseID + ":" + professorKey
}

func professorsKey(subject domain.Subject) string {
	return professorsKeyPrefix + string(subject)
}

// GetAggregate returns the cached stats for a course or (course, professor)
// pair, or nil on a miss.
func (c *StatsCache) GetAggregate(ctx context.Context, courseID, professorKey string) (*domain.AggregateStats, error) {
	data, err := c.client.Get(ctx, aggregateKey(courseID, professorKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get aggregate: %w", err)
	}

	var stats domain.AggregateStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshal aggregate: %w", err)
	}

	return &stats, nil
}

// SetAggregate caches stats with the configured TTL.
func (c *StatsCache) SetAggregate(ctx context.Context, stats domain.AggregateStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal aggregate: %w", err)
	}

	if err := c.client.Set(ctx, aggregateKey(stats.CourseID, stats.ProfessorKey), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set aggregate: %w", err)
	}

	return nil
}

// GetProfessors returns the cached professor directory for a subject, or nil
// on a miss.
func (c *StatsCache) GetProfessors(ctx context.Context, subject domain.Subject) ([]domain.Professor, error) {
	data, err := c.client.Get(ctx, professorsKey(subject)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get professors: %w", err)
	}

	var professors []domain.Professor
	if err := json.Unmarshal(data, &professors); err != nil {
		return nil, fmt.Errorf("unmarshal professors: %w", err)
	}

	return professors, nil
}

// SetProfessors caches a subject's professor directory with the configured TTL.
func (c *StatsCache) SetProfessors(ctx context.Context, subject domain.Subject, professors []domain.Professor) error {
	data, err := json.Marshal(professors)
	if err != nil {
		return fmt.Errorf("marshal professors: %w", err)
	}

	if err := c.client.Set(ctx, professorsKey(subject), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set professors: %w", err)
	}

	return nil
}

// InvalidateCourse drops every cached aggregate for a course plus the
// subject's professor directory. Per-professor aggregate keys are found by
// prefix scan; a course has at most a handful of professors so the scan is
// cheap.
func (c *StatsCache) InvalidateCourse(ctx context.Context, courseID string, subject domain.Subject) error {
	keys := []string{
		aggregateKey(courseID, ""),
		professorsKey(subject),
	}

	iter := c.client.Scan(ctx, 0, aggregateKeyPrefix+courseID+":*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan aggregates: %w", err)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del course keys: %w", err)
	}

	return nil
}
