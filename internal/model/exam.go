package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the moderation lifecycle states of an exam.
// PUBLISHED is a sub-state of APPROVED: it is reachable only from APPROVED
// and unpublish returns there.
type ExamStatus string

const (
	ExamStatusDraft     ExamStatus = "draft"
	ExamStatusPending   ExamStatus = "pending"
	ExamStatusApproved  ExamStatus = "approved"
	ExamStatusRejected  ExamStatus = "rejected"
	ExamStatusPublished ExamStatus = "published"
)

// Valid reports whether s is a known status.
func (s ExamStatus) Valid() bool {
	switch s {
	case ExamStatusDraft, ExamStatusPending, ExamStatusApproved,
		ExamStatusRejected, ExamStatusPublished:
		return true
	}
	return false
}

// Editable reports whether the author may replace the exam's content.
// Pending and approved exams are frozen until a decision or a withdraw.
func (s ExamStatus) Editable() bool {
	return s == ExamStatusDraft || s == ExamStatusRejected
}

// Level is the CEFR-aligned difficulty band of an exam.
type Level string

const (
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
)

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	switch l {
	case LevelA2, LevelB1, LevelB2, LevelC1:
		return true
	}
	return false
}

// Exam is the aggregate root binding metadata to exactly one skill content
// variant. All lifecycle operations produce a new Exam value; Version is the
// optimistic stamp the store checks on save.
type Exam struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	ExamCode        string       `json:"exam_code"`
	Level           Level        `json:"level"`
	DurationMinutes int          `json:"duration_minutes"`
	CreatedBy       int          `json:"created_by"`
	CreatedByName   string       `json:"created_by_name"`
	Skill           Skill        `json:"skill"`
	Content         SkillContent `json:"content"`
	Status          ExamStatus   `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	AttemptCount    int          `json:"attempt_count"`
	Version         int          `json:"version"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`

	// ModerationHistory is populated on detail reads and exports; list
	// queries leave it nil.
	ModerationHistory []ModerationRecord `json:"moderation_history,omitempty"`
}

// examAlias avoids recursing into Exam's own UnmarshalJSON.
type examAlias Exam

type examWire struct {
	examAlias
	Content json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes the skill-tagged content union alongside the flat
// fields, so parse(serialize(exam)) reproduces the full aggregate.
func (e *Exam) UnmarshalJSON(data []byte) error {
	var w examWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Exam(w.examAlias)
	if len(w.Content) == 0 || string(w.Content) == "null" {
		e.Content = SkillContent{}
		return nil
	}
	content, err := UnmarshalFor(e.Skill, w.Content)
	if err != nil {
		return err
	}
	e.Content = content
	return nil
}

// Clone returns a deep copy, the starting point of every pure transform.
func (e Exam) Clone() Exam {
	out := e
	out.Content = e.Content.Clone()
	out.ModerationHistory = append([]ModerationRecord(nil), e.ModerationHistory...)
	return out
}

// CreateExamRequest is the payload for creating a new draft exam. Content is
// not accepted here; a fresh draft always starts from the default skeleton
// for its skill.
type CreateExamRequest struct {
	Title           string `json:"title" binding:"required,min=3,max=255"`
	ExamCode        string `json:"exam_code" binding:"required,min=2,max=64"`
	Level           Level  `json:"level" binding:"required,oneof=A2 B1 B2 C1"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	Skill           Skill  `json:"skill" binding:"required,oneof=reading listening writing speaking"`
}

// UpdateContentRequest replaces the exam's content wholesale. The raw JSON
// is decoded against the exam's own skill, never a client-supplied one.
type UpdateContentRequest struct {
	Content json.RawMessage `json:"content" binding:"required"`
}
