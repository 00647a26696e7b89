// Package workflow implements the moderation state machine. The legal moves
// live in one transition table; Apply is a pure function that returns the
// transformed exam (and the ledger record a decision appends) without
// touching the input.
package workflow

import (
	"strings"
	"time"

	"github.com/vstepready/vstep-backend/internal/content"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// Action is a lifecycle operation on an exam.
type Action string

const (
	ActionSubmit    Action = "submit"
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionPublish   Action = "publish"
	ActionUnpublish Action = "unpublish"
	ActionWithdraw  Action = "withdraw"
)

// transitions is the single source of truth for legal moves. Anything not
// listed here fails with InvalidStateTransition; validity is never inferred
// from which collection an exam happens to sit in.
var transitions = map[model.ExamStatus]map[Action]model.ExamStatus{
	model.ExamStatusDraft: {
		ActionSubmit: model.ExamStatusPending,
	},
	model.ExamStatusPending: {
		ActionApprove:  model.ExamStatusApproved,
		ActionReject:   model.ExamStatusRejected,
		ActionWithdraw: model.ExamStatusDraft,
	},
	model.ExamStatusRejected: {
		ActionSubmit: model.ExamStatusPending,
	},
	model.ExamStatusApproved: {
		ActionPublish:  model.ExamStatusPublished,
		ActionWithdraw: model.ExamStatusDraft,
	},
	model.ExamStatusPublished: {
		ActionUnpublish: model.ExamStatusApproved,
		ActionWithdraw:  model.ExamStatusDraft,
	},
}

// Target returns the destination status for an action from a status, or
// false when the move is not in the table.
func Target(from model.ExamStatus, action Action) (model.ExamStatus, bool) {
	to, ok := transitions[from][action]
	return to, ok
}

// Apply runs one lifecycle action against an immutable exam snapshot and
// returns the updated copy. Approve and reject also return the ledger record
// to append; every other action returns a nil record.
//
// Guards, in order: the move must exist in the table, the actor must be
// allowed to make it, and action-specific preconditions (content validity,
// non-blank reason) must hold.
func Apply(exam model.Exam, action Action, actor model.Actor, reason string, now time.Time) (model.Exam, *model.ModerationRecord, error) {
	to, ok := Target(exam.Status, action)
	if !ok {
		return model.Exam{}, nil, &examerr.InvalidStateTransition{
			From:      string(exam.Status),
			Attempted: string(action),
		}
	}

	switch action {
	case ActionApprove, ActionReject:
		if !actor.Role.CanReview() {
			return model.Exam{}, nil, examerr.ErrForbidden
		}
	}

	out := exam.Clone()
	out.UpdatedAt = now

	var record *model.ModerationRecord

	switch action {
	case ActionSubmit:
		if vs := content.Validate(out.Content, out.Skill); len(vs) > 0 {
			return model.Exam{}, nil, &examerr.ValidationFailed{Violations: vs}
		}
		out.RejectionReason = ""

	case ActionApprove:
		record = &model.ModerationRecord{
			ExamID:       out.ID,
			ReviewerID:   actor.ID,
			ReviewerName: actor.Name,
			Decision:     model.DecisionApproved,
			Timestamp:    now,
		}
		out.RejectionReason = ""

	case ActionReject:
		if strings.TrimSpace(reason) == "" {
			return model.Exam{}, nil, examerr.ErrMissingReason
		}
		record = &model.ModerationRecord{
			ExamID:       out.ID,
			ReviewerID:   actor.ID,
			ReviewerName: actor.Name,
			Decision:     model.DecisionRejected,
			Reason:       reason,
			Timestamp:    now,
		}
		out.RejectionReason = reason

	case ActionWithdraw:
		// Withdraw hides the moderation outcome from the exam's surface but
		// the ledger keeps every prior record.
		out.RejectionReason = ""
	}

	out.Status = to
	if record != nil {
		out.ModerationHistory = append(out.ModerationHistory, *record)
	}
	return out, record, nil
}

// CanDelete reports whether an exam may be destroyed. Approved and published
// exams must be unpublished/withdrawn first; enforcing that here keeps the
// invariant out of callers' hands.
func CanDelete(status model.ExamStatus) bool {
	return status != model.ExamStatusApproved && status != model.ExamStatusPublished
}
