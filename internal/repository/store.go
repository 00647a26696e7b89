// Package repository defines the persistence interfaces for exams, their
// moderation ledger and user accounts, with an in-memory implementation for
// tests and a PostgreSQL implementation for production. Services only ever
// see the interfaces.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vstepready/vstep-backend/internal/model"
)

// ExamQuery narrows List results. Zero values ("", 0) disable a filter; the
// "all" sentinel used by the HTTP layer is normalized to "" before it
// reaches the store. Text search and pagination are applied by the bank
// service on top of the ordered result.
type ExamQuery struct {
	Skill    model.Skill
	Level    model.Level
	Status   model.ExamStatus
	AuthorID int
}

// ExamStore persists exam aggregates. Save enforces the optimistic version
// stamp: a new exam (Version 0) is inserted with Version 1, an existing one
// is updated only when the caller's Version matches the stored one, and a
// mismatch returns examerr.ErrConflict. List returns exams in creation
// order, oldest first, so query projections stay stably ordered.
type ExamStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error)
	Save(ctx context.Context, exam *model.Exam) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q ExamQuery) ([]model.Exam, error)
}

// ModerationStore persists the append-only decision ledger.
type ModerationStore interface {
	Append(ctx context.Context, rec *model.ModerationRecord) error
	ListByExam(ctx context.Context, examID uuid.UUID) ([]model.ModerationRecord, error)
}

// UserStore resolves accounts for authentication and bootstrap.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
}
