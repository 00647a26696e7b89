package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vstepready/vstep-backend/internal/model"
)

// PostgresModerationStore is the pgx-backed ModerationStore. The table is
// append-only; there is no update or delete path.
type PostgresModerationStore struct {
	pool *pgxpool.Pool
}

// NewPostgresModerationStore creates a PostgresModerationStore.
func NewPostgresModerationStore(pool *pgxpool.Pool) *PostgresModerationStore {
	return &PostgresModerationStore{pool: pool}
}

// Append inserts one ledger record.
func (r *PostgresModerationStore) Append(ctx context.Context, rec *model.ModerationRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO moderation_records (exam_id, reviewer_id, decision, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		rec.ExamID, rec.ReviewerID, rec.Decision, nullable(rec.Reason), rec.Timestamp,
	).Scan(&rec.ID)
}

// ListByExam returns the ledger for one exam, oldest first.
func (r *PostgresModerationStore) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.ModerationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.exam_id, m.reviewer_id, u.name, m.decision, m.reason, m.created_at
		 FROM moderation_records m JOIN users u ON u.id = m.reviewer_id
		 WHERE m.exam_id = $1
		 ORDER BY m.id ASC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.ModerationRecord
	for rows.Next() {
		var rec model.ModerationRecord
		var reason *string
		if err := rows.Scan(&rec.ID, &rec.ExamID, &rec.ReviewerID, &rec.ReviewerName,
			&rec.Decision, &reason, &rec.Timestamp); err != nil {
			return nil, err
		}
		if reason != nil {
			rec.Reason = *reason
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
