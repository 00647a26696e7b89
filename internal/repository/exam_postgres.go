package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// PostgresExamStore is the pgx-backed ExamStore. Content is stored as a
// JSONB document keyed by the exam's skill column.
type PostgresExamStore struct {
	pool *pgxpool.Pool
}

// NewPostgresExamStore creates a PostgresExamStore.
func NewPostgresExamStore(pool *pgxpool.Pool) *PostgresExamStore {
	return &PostgresExamStore{pool: pool}
}

const examColumns = `e.id, e.title, e.exam_code, e.level, e.duration_minutes,
	e.created_by, u.name, e.skill, e.content, e.status, e.rejection_reason,
	e.attempt_count, e.version, e.created_at, e.updated_at`

// GetByID retrieves an exam by its UUID.
func (r *PostgresExamStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+examColumns+`
		 FROM exams e JOIN users u ON u.id = e.created_by
		 WHERE e.id = $1`, id)

	e, err := scanExam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, examerr.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// Save inserts a new exam (Version 0) or updates an existing one guarded by
// the optimistic version stamp.
func (r *PostgresExamStore) Save(ctx context.Context, e *model.Exam) error {
	contentJSON, err := json.Marshal(e.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	if e.Version == 0 {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		err := r.pool.QueryRow(ctx,
			`INSERT INTO exams (id, title, exam_code, level, duration_minutes,
			                    created_by, skill, content, status, rejection_reason,
			                    attempt_count, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
			 RETURNING version, created_at, updated_at`,
			e.ID, e.Title, e.ExamCode, e.Level, e.DurationMinutes,
			e.CreatedBy, e.Skill, contentJSON, e.Status, nullable(e.RejectionReason),
			e.AttemptCount,
		).Scan(&e.Version, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert exam: %w", err)
		}
		return nil
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET title = $1, exam_code = $2, level = $3, duration_minutes = $4,
		     content = $5, status = $6, rejection_reason = $7,
		     version = version + 1, updated_at = NOW()
		 WHERE id = $8 AND version = $9`,
		e.Title, e.ExamCode, e.Level, e.DurationMinutes,
		contentJSON, e.Status, nullable(e.RejectionReason),
		e.ID, e.Version)
	if err != nil {
		return fmt.Errorf("update exam: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a stale stamp from a vanished row.
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM exams WHERE id = $1)`, e.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return examerr.ErrNotFound
		}
		return examerr.ErrConflict
	}
	e.Version++
	return nil
}

// Delete removes an exam row. Ledger rows are kept (no FK cascade) so the
// decision history survives the aggregate.
func (r *PostgresExamStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return examerr.ErrNotFound
	}
	return nil
}

// List returns matching exams ordered by creation time, oldest first.
func (r *PostgresExamStore) List(ctx context.Context, q ExamQuery) ([]model.Exam, error) {
	query := `SELECT ` + examColumns + `
	          FROM exams e JOIN users u ON u.id = e.created_by WHERE 1=1`
	var args []interface{}

	if q.Skill != "" {
		args = append(args, q.Skill)
		query += fmt.Sprintf(" AND e.skill = $%d", len(args))
	}
	if q.Level != "" {
		args = append(args, q.Level)
		query += fmt.Sprintf(" AND e.level = $%d", len(args))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		query += fmt.Sprintf(" AND e.status = $%d", len(args))
	}
	if q.AuthorID != 0 {
		args = append(args, q.AuthorID)
		query += fmt.Sprintf(" AND e.created_by = $%d", len(args))
	}
	query += " ORDER BY e.created_at ASC, e.id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, *e)
	}
	return exams, rows.Err()
}

func scanExam(row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	var contentJSON []byte
	var reason *string

	err := row.Scan(&e.ID, &e.Title, &e.ExamCode, &e.Level, &e.DurationMinutes,
		&e.CreatedBy, &e.CreatedByName, &e.Skill, &contentJSON, &e.Status, &reason,
		&e.AttemptCount, &e.Version, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		e.RejectionReason = *reason
	}
	content, err := model.UnmarshalFor(e.Skill, contentJSON)
	if err != nil {
		return nil, fmt.Errorf("exam %s: %w", e.ID, err)
	}
	e.Content = content
	return e, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
