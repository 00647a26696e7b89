package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/repository"
	"github.com/vstepready/vstep-backend/internal/workflow"
)

// ModerationService implements the reviewer-facing workflow: the pending
// queue, approve/reject decisions, the publish toggle and the ledger. Every
// decision appends exactly one ModerationRecord; the exam's status is a
// projection of the latest record, never edited on its own.
type ModerationService struct {
	exams  repository.ExamStore
	ledger repository.ModerationStore
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewModerationService creates a new ModerationService.
func NewModerationService(
	exams repository.ExamStore,
	ledger repository.ModerationStore,
	rdb *redis.Client,
	log zerolog.Logger,
) *ModerationService {
	return &ModerationService{
		exams:  exams,
		ledger: ledger,
		rdb:    rdb,
		log:    log.With().Str("component", "moderation_service").Logger(),
	}
}

// ListPending returns the review queue, optionally narrowed by skill/level.
func (s *ModerationService) ListPending(ctx context.Context, skill model.Skill, level model.Level) ([]model.Exam, error) {
	exams, err := s.exams.List(ctx, repository.ExamQuery{
		Status: model.ExamStatusPending,
		Skill:  skill,
		Level:  level,
	})
	if err != nil {
		return nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, nil
}

// Approve records an approval decision. Approving anything but a pending
// exam fails with InvalidStateTransition; a double approval is a reported
// error, not an idempotent no-op, so the ledger stays unambiguous.
func (s *ModerationService) Approve(ctx context.Context, actor model.Actor, examID uuid.UUID) (*model.Exam, error) {
	return s.decide(ctx, actor, examID, workflow.ActionApprove, "")
}

// Reject records a rejection decision with its mandatory reason.
func (s *ModerationService) Reject(ctx context.Context, actor model.Actor, examID uuid.UUID, reason string) (*model.Exam, error) {
	return s.decide(ctx, actor, examID, workflow.ActionReject, reason)
}

func (s *ModerationService) decide(ctx context.Context, actor model.Actor, examID uuid.UUID, action workflow.Action, reason string) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	updated, record, err := workflow.Apply(*exam, action, actor, reason, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Save first: if a concurrent decision won the version race, the loser
	// stops here and no ledger record is written.
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}
	if err := s.ledger.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append moderation record: %w", err)
	}

	if err := publishEvent(ctx, s.rdb, ModerationEvent{
		Type: string(record.Decision), ExamID: examID.String(), Title: updated.Title,
		Skill: updated.Skill, Level: updated.Level, Status: updated.Status,
		Actor: actor.Name, Timestamp: record.Timestamp,
	}); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Event publish failed")
	}

	s.log.Info().
		Str("exam_id", examID.String()).
		Str("decision", string(record.Decision)).
		Int("reviewer", actor.ID).
		Msg("Moderation decision recorded")
	return &updated, nil
}

// History returns the full decision ledger for an exam, oldest first.
func (s *ModerationService) History(ctx context.Context, examID uuid.UUID) ([]model.ModerationRecord, error) {
	if _, err := s.exams.GetByID(ctx, examID); err != nil {
		return nil, err
	}
	records, err := s.ledger.ListByExam(ctx, examID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.ModerationRecord{}
	}
	return records, nil
}

// Publish makes an approved exam visible and eligible for random selection
// by test assembly.
func (s *ModerationService) Publish(ctx context.Context, actor model.Actor, examID uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	updated, _, err := workflow.Apply(*exam, workflow.ActionPublish, actor, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}

	if err := addToSelectionPool(ctx, s.rdb, &updated); err != nil {
		return nil, err
	}

	if err := publishEvent(ctx, s.rdb, ModerationEvent{
		Type: "published", ExamID: examID.String(), Title: updated.Title,
		Skill: updated.Skill, Level: updated.Level, Status: updated.Status,
		Actor: actor.Name, Timestamp: time.Now().UTC(),
	}); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Event publish failed")
	}

	s.log.Info().Str("exam_id", examID.String()).Msg("Exam published")
	return &updated, nil
}

// Unpublish hides a published exam again, returning it to approved.
func (s *ModerationService) Unpublish(ctx context.Context, actor model.Actor, examID uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	updated, _, err := workflow.Apply(*exam, workflow.ActionUnpublish, actor, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}

	if err := removeFromSelectionPool(ctx, s.rdb, &updated); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Pool eviction failed")
	}

	s.log.Info().Str("exam_id", examID.String()).Msg("Exam unpublished")
	return &updated, nil
}

// PrewarmSelectionPools loads every published exam into Redis on startup so
// test assembly never races a cold cache.
func (s *ModerationService) PrewarmSelectionPools(ctx context.Context) error {
	exams, err := s.exams.List(ctx, repository.ExamQuery{Status: model.ExamStatusPublished})
	if err != nil {
		return fmt.Errorf("list published exams: %w", err)
	}

	if len(exams) == 0 {
		s.log.Info().Msg("No published exams to prewarm")
		return nil
	}

	warmed := 0
	for i := range exams {
		if err := addToSelectionPool(ctx, s.rdb, &exams[i]); err != nil {
			s.log.Warn().
				Err(err).
				Str("exam_id", exams[i].ID.String()).
				Msg("Failed to warm exam, skipping")
			continue
		}
		warmed++
	}

	s.log.Info().
		Int("warmed", warmed).
		Int("total", len(exams)).
		Msg("Selection pools prewarmed")
	return nil
}
