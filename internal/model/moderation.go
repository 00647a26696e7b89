package model

import (
	"time"

	"github.com/google/uuid"
)

// Decision is the outcome a reviewer records for a pending exam.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// ModerationRecord is one append-only ledger entry. The exam's current
// status and rejection reason are a projection of the latest record; they
// are never edited independently.
type ModerationRecord struct {
	ID           int       `json:"id,omitempty"`
	ExamID       uuid.UUID `json:"exam_id"`
	ReviewerID   int       `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	Decision     Decision  `json:"decision"`
	Reason       string    `json:"reason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// RejectRequest is the reviewer payload for rejecting an exam. The reason is
// checked for non-blankness in the workflow, not only by binding, so that a
// whitespace-only reason is refused too.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=2000"`
}
