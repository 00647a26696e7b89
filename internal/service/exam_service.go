package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/content"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/repository"
	"github.com/vstepready/vstep-backend/internal/workflow"
)

// ErrNotExamAuthor is returned when a non-admin actor touches an exam they
// do not own.
var ErrNotExamAuthor = errors.New("not the author of this exam")

// ExamService implements the author-facing operations: draft creation,
// content editing, submission, withdrawal, deletion and import/export.
// Every mutation loads a snapshot, applies a pure transform and saves under
// the optimistic version stamp.
type ExamService struct {
	exams  repository.ExamStore
	ledger repository.ModerationStore
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	exams repository.ExamStore,
	ledger repository.ModerationStore,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		exams:  exams,
		ledger: ledger,
		rdb:    rdb,
		log:    log.With().Str("component", "exam_service").Logger(),
	}
}

// Create builds a new draft exam with the default content skeleton for its
// skill, owned by the actor.
func (s *ExamService) Create(ctx context.Context, actor model.Actor, req model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Title:           req.Title,
		ExamCode:        req.ExamCode,
		Level:           req.Level,
		DurationMinutes: req.DurationMinutes,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		Skill:           req.Skill,
		Content:         content.Default(req.Skill),
		Status:          model.ExamStatusDraft,
	}

	if err := s.exams.Save(ctx, exam); err != nil {
		return nil, fmt.Errorf("save exam: %w", err)
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Str("skill", string(exam.Skill)).
		Int("author", actor.ID).
		Msg("Exam created")
	return exam, nil
}

// GetByID retrieves an exam with its moderation history attached. Authors
// only see their own exams; admins see everything.
func (s *ExamService) GetByID(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load moderation history: %w", err)
	}
	exam.ModerationHistory = history
	return exam, nil
}

// UpdateContent replaces the exam's content wholesale. Only draft and
// rejected exams are editable; the raw JSON is decoded against the exam's
// own skill so the variant can never be swapped.
func (s *ExamService) UpdateContent(ctx context.Context, actor model.Actor, id uuid.UUID, raw json.RawMessage) (*model.Exam, error) {
	exam, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !exam.Status.Editable() {
		return nil, &examerr.InvalidStateTransition{From: string(exam.Status), Attempted: "edit"}
	}

	newContent, err := model.UnmarshalFor(exam.Skill, raw)
	if err != nil {
		return nil, &examerr.ValidationFailed{Violations: []examerr.Violation{{
			Path: "content", Message: err.Error(),
		}}}
	}

	updated := exam.Clone()
	updated.Content = newContent
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddQuestion appends an empty question to a part of the exam's content.
func (s *ExamService) AddQuestion(ctx context.Context, actor model.Actor, id uuid.UUID, partIndex int) (*model.Exam, error) {
	return s.editContent(ctx, actor, id, func(c model.SkillContent) (model.SkillContent, error) {
		return content.AddQuestion(c, partIndex)
	})
}

// RemoveQuestion deletes a question from a part, refusing to empty it.
func (s *ExamService) RemoveQuestion(ctx context.Context, actor model.Actor, id uuid.UUID, partIndex, questionIndex int) (*model.Exam, error) {
	return s.editContent(ctx, actor, id, func(c model.SkillContent) (model.SkillContent, error) {
		return content.RemoveQuestion(c, partIndex, questionIndex)
	})
}

func (s *ExamService) editContent(ctx context.Context, actor model.Actor, id uuid.UUID, edit func(model.SkillContent) (model.SkillContent, error)) (*model.Exam, error) {
	exam, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !exam.Status.Editable() {
		return nil, &examerr.InvalidStateTransition{From: string(exam.Status), Attempted: "edit"}
	}

	newContent, err := edit(exam.Content)
	if err != nil {
		return nil, err
	}

	updated := exam.Clone()
	updated.Content = newContent
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Submit validates the content and moves the exam to pending. A rejected
// exam resubmits the same way; no ledger record is written until the next
// review decision.
func (s *ExamService) Submit(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.applyAction(ctx, actor, id, workflow.ActionSubmit)
	if err != nil {
		return nil, err
	}

	if err := publishEvent(ctx, s.rdb, ModerationEvent{
		Type: "submitted", ExamID: exam.ID.String(), Title: exam.Title,
		Skill: exam.Skill, Level: exam.Level, Status: exam.Status,
		Actor: actor.Name, Timestamp: time.Now().UTC(),
	}); err != nil {
		s.log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("Event publish failed")
	}
	return exam, nil
}

// Withdraw pulls an exam back to draft. A published exam leaves the
// selection pool; the moderation ledger keeps all prior records.
func (s *ExamService) Withdraw(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Exam, error) {
	before, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	exam, err := s.applyAction(ctx, actor, id, workflow.ActionWithdraw)
	if err != nil {
		return nil, err
	}

	if before.Status == model.ExamStatusPublished {
		if err := removeFromSelectionPool(ctx, s.rdb, before); err != nil {
			s.log.Warn().Err(err).Str("exam_id", id.String()).Msg("Pool eviction failed")
		}
	}

	s.log.Info().Str("exam_id", id.String()).Msg("Exam withdrawn")
	return exam, nil
}

func (s *ExamService) applyAction(ctx context.Context, actor model.Actor, id uuid.UUID, action workflow.Action) (*model.Exam, error) {
	exam, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	updated, _, err := workflow.Apply(*exam, action, actor, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.exams.Save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete destroys an exam that is not approved or published.
func (s *ExamService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	exam, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if !workflow.CanDelete(exam.Status) {
		return examerr.ErrCannotDeletePublished
	}
	if err := s.exams.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("exam_id", id.String()).Int("actor", actor.ID).Msg("Exam deleted")
	return nil
}

// Export returns the full round-trippable aggregate including its ledger.
func (s *ExamService) Export(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Exam, error) {
	return s.GetByID(ctx, actor, id)
}

// Import creates a new draft from a previously exported exam. The importer
// becomes the author and the lifecycle restarts at draft: moderation
// decisions are never imported.
func (s *ExamService) Import(ctx context.Context, actor model.Actor, raw json.RawMessage) (*model.Exam, error) {
	var src model.Exam
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, &examerr.ValidationFailed{Violations: []examerr.Violation{{
			Path: "exam", Message: err.Error(),
		}}}
	}
	if !src.Skill.Valid() || !src.Level.Valid() {
		return nil, &examerr.ValidationFailed{Violations: []examerr.Violation{{
			Path: "exam", Message: "skill and level must be valid",
		}}}
	}
	if src.Content.Skill() != src.Skill {
		return nil, &examerr.ValidationFailed{Violations: []examerr.Violation{{
			Path: "content", Message: fmt.Sprintf("content shape does not match skill %q", src.Skill),
		}}}
	}

	exam := &model.Exam{
		Title:           src.Title,
		ExamCode:        src.ExamCode,
		Level:           src.Level,
		DurationMinutes: src.DurationMinutes,
		CreatedBy:       actor.ID,
		CreatedByName:   actor.Name,
		Skill:           src.Skill,
		Content:         src.Content.Clone(),
		Status:          model.ExamStatusDraft,
	}
	if err := s.exams.Save(ctx, exam); err != nil {
		return nil, err
	}

	s.log.Info().Str("exam_id", exam.ID.String()).Msg("Exam imported")
	return exam, nil
}

// loadOwned fetches an exam and enforces ownership for non-admin actors.
func (s *ExamService) loadOwned(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.exams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != model.RoleAdmin && exam.CreatedBy != actor.ID {
		return nil, ErrNotExamAuthor
	}
	return exam, nil
}
