package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/model"
)

// ModerationEvent is the message broadcast to reviewer dashboards whenever
// an exam moves through the workflow.
type ModerationEvent struct {
	Type      string           `json:"type"` // submitted, approved, rejected, published, unpublished, withdrawn
	ExamID    string           `json:"exam_id"`
	Title     string           `json:"title"`
	Skill     model.Skill      `json:"skill"`
	Level     model.Level      `json:"level"`
	Status    model.ExamStatus `json:"status"`
	Actor     string           `json:"actor,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// addToSelectionPool registers a published exam in the random-selection pool
// and caches its payload for test assembly. Both writes go through one
// pipeline so the pool never references a missing payload.
func addToSelectionPool(ctx context.Context, rdb *redis.Client, exam *model.Exam) error {
	payload, err := json.Marshal(exam)
	if err != nil {
		return fmt.Errorf("marshal exam payload: %w", err)
	}

	pipe := rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.ExamPayloadKey(exam.ID.String()), payload, 0)
	pipe.SAdd(ctx, config.CacheKey.SelectionPoolKey(string(exam.Skill), string(exam.Level)), exam.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}
	return nil
}

// removeFromSelectionPool drops an exam from the pool and deletes its cached
// payload. Safe to call for exams that were never pooled.
func removeFromSelectionPool(ctx context.Context, rdb *redis.Client, exam *model.Exam) error {
	pipe := rdb.Pipeline()
	pipe.SRem(ctx, config.CacheKey.SelectionPoolKey(string(exam.Skill), string(exam.Level)), exam.ID.String())
	pipe.Del(ctx, config.CacheKey.ExamPayloadKey(exam.ID.String()))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("evict from redis: %w", err)
	}
	return nil
}

// publishEvent broadcasts a moderation event. Event delivery is best-effort:
// a Redis hiccup must never fail the workflow transition itself, so callers
// log the returned error instead of propagating it.
func publishEvent(ctx context.Context, rdb *redis.Client, ev ModerationEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return rdb.Publish(ctx, config.CacheKey.ModerationChannel(), data).Err()
}
