package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vstepready/vstep-backend/internal/content"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

var (
	author   = model.Actor{ID: 1, Name: "Thu Ha", Role: model.RoleTeacher}
	reviewer = model.Actor{ID: 2, Name: "Quang Minh", Role: model.RoleAdmin}
)

func writingExam(status model.ExamStatus) model.Exam {
	c := content.Default(model.SkillWriting)
	c.Writing.Task1.Prompt = "Write an email to your new neighbour."
	c.Writing.Task2.Prompt = "Cities should ban private cars from their centres. Discuss."

	return model.Exam{
		ID:      uuid.New(),
		Title:   "B1 Writing Mock 4",
		Level:   model.LevelB1,
		Skill:   model.SkillWriting,
		Content: c,
		Status:  status,
		Version: 1,
	}
}

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from   model.ExamStatus
		action Action
		to     model.ExamStatus
		legal  bool
	}{
		{model.ExamStatusDraft, ActionSubmit, model.ExamStatusPending, true},
		{model.ExamStatusDraft, ActionApprove, "", false},
		{model.ExamStatusPending, ActionApprove, model.ExamStatusApproved, true},
		{model.ExamStatusPending, ActionReject, model.ExamStatusRejected, true},
		{model.ExamStatusPending, ActionWithdraw, model.ExamStatusDraft, true},
		{model.ExamStatusPending, ActionPublish, "", false},
		{model.ExamStatusRejected, ActionSubmit, model.ExamStatusPending, true},
		{model.ExamStatusRejected, ActionReject, "", false},
		{model.ExamStatusApproved, ActionPublish, model.ExamStatusPublished, true},
		{model.ExamStatusApproved, ActionWithdraw, model.ExamStatusDraft, true},
		{model.ExamStatusApproved, ActionApprove, "", false},
		{model.ExamStatusPublished, ActionUnpublish, model.ExamStatusApproved, true},
		{model.ExamStatusPublished, ActionWithdraw, model.ExamStatusDraft, true},
		{model.ExamStatusPublished, ActionSubmit, "", false},
	}

	for _, tt := range tests {
		to, ok := Target(tt.from, tt.action)
		if ok != tt.legal {
			t.Errorf("%s from %s: legal = %v, want %v", tt.action, tt.from, ok, tt.legal)
			continue
		}
		if ok && to != tt.to {
			t.Errorf("%s from %s = %s, want %s", tt.action, tt.from, to, tt.to)
		}
	}
}

func TestSubmitValidDraft(t *testing.T) {
	exam := writingExam(model.ExamStatusDraft)
	out, record, err := Apply(exam, ActionSubmit, author, "", time.Now())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := out.Status, model.ExamStatusPending; got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
	if record != nil {
		t.Errorf("record = %+v, want nil (submit is not a decision)", record)
	}
	// Input snapshot stays untouched.
	if exam.Status != model.ExamStatusDraft {
		t.Errorf("input mutated to %s", exam.Status)
	}
}

func TestSubmitInvalidContent(t *testing.T) {
	exam := writingExam(model.ExamStatusDraft)
	exam.Content.Writing.Task1.Prompt = ""

	_, _, err := Apply(exam, ActionSubmit, author, "", time.Now())
	var vf *examerr.ValidationFailed
	if !errors.As(err, &vf) {
		t.Fatalf("err = %v, want ValidationFailed", err)
	}
	if len(vf.Violations) == 0 {
		t.Error("want at least one violation")
	}
}

func TestApproveWritesLedgerRecord(t *testing.T) {
	now := time.Now().UTC()
	exam := writingExam(model.ExamStatusPending)

	out, record, err := Apply(exam, ActionApprove, reviewer, "", now)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := out.Status, model.ExamStatusApproved; got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
	if record == nil {
		t.Fatal("record is nil, want approval record")
	}
	if got, want := record.Decision, model.DecisionApproved; got != want {
		t.Errorf("decision = %s, want %s", got, want)
	}
	if got, want := record.ReviewerID, reviewer.ID; got != want {
		t.Errorf("reviewer = %d, want %d", got, want)
	}
	if got, want := len(out.ModerationHistory), 1; got != want {
		t.Errorf("history = %d, want %d", got, want)
	}
}

func TestApproveRequiresReviewer(t *testing.T) {
	exam := writingExam(model.ExamStatusPending)
	_, _, err := Apply(exam, ActionApprove, author, "", time.Now())
	if !errors.Is(err, examerr.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestDoubleApproveFails(t *testing.T) {
	exam := writingExam(model.ExamStatusPending)
	out, _, err := Apply(exam, ActionApprove, reviewer, "", time.Now())
	if err != nil {
		t.Fatalf("first approve: %v", err)
	}

	_, _, err = Apply(out, ActionApprove, reviewer, "", time.Now())
	var ist *examerr.InvalidStateTransition
	if !errors.As(err, &ist) {
		t.Fatalf("second approve err = %v, want InvalidStateTransition", err)
	}
	if got, want := ist.From, "approved"; got != want {
		t.Errorf("from = %s, want %s", got, want)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	exam := writingExam(model.ExamStatusPending)

	_, _, err := Apply(exam, ActionReject, reviewer, "", time.Now())
	if !errors.Is(err, examerr.ErrMissingReason) {
		t.Fatalf("blank reason err = %v, want ErrMissingReason", err)
	}
	_, _, err = Apply(exam, ActionReject, reviewer, "   ", time.Now())
	if !errors.Is(err, examerr.ErrMissingReason) {
		t.Fatalf("whitespace reason err = %v, want ErrMissingReason", err)
	}

	out, record, err := Apply(exam, ActionReject, reviewer, "missing answers", time.Now())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got, want := out.Status, model.ExamStatusRejected; got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
	if got, want := out.RejectionReason, "missing answers"; got != want {
		t.Errorf("reason = %q, want %q", got, want)
	}
	if record == nil || record.Reason != "missing answers" {
		t.Errorf("record = %+v, want reason on record", record)
	}
}

func TestWithdrawKeepsLedger(t *testing.T) {
	exam := writingExam(model.ExamStatusPending)
	approved, _, err := Apply(exam, ActionApprove, reviewer, "", time.Now())
	if err != nil {
		t.Fatalf("approve: %v", err)
	}

	withdrawn, record, err := Apply(approved, ActionWithdraw, author, "", time.Now())
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got, want := withdrawn.Status, model.ExamStatusDraft; got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
	if record != nil {
		t.Errorf("record = %+v, want nil (withdraw is not a decision)", record)
	}
	if got, want := len(withdrawn.ModerationHistory), 1; got != want {
		t.Errorf("history = %d, want %d (withdraw never erases records)", got, want)
	}
}

func TestResubmitClearsRejectionReason(t *testing.T) {
	exam := writingExam(model.ExamStatusPending)
	rejected, _, err := Apply(exam, ActionReject, reviewer, "task 2 prompt unclear", time.Now())
	if err != nil {
		t.Fatalf("reject: %v", err)
	}

	resubmitted, record, err := Apply(rejected, ActionSubmit, author, "", time.Now())
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if got, want := resubmitted.Status, model.ExamStatusPending; got != want {
		t.Errorf("status = %s, want %s", got, want)
	}
	if resubmitted.RejectionReason != "" {
		t.Errorf("reason = %q, want cleared", resubmitted.RejectionReason)
	}
	if record != nil {
		t.Error("resubmit wrote a ledger record, want none until the next decision")
	}
	if got, want := len(resubmitted.ModerationHistory), 1; got != want {
		t.Errorf("history = %d, want %d", got, want)
	}
}

func TestCanDelete(t *testing.T) {
	tests := []struct {
		status model.ExamStatus
		want   bool
	}{
		{model.ExamStatusDraft, true},
		{model.ExamStatusPending, true},
		{model.ExamStatusRejected, true},
		{model.ExamStatusApproved, false},
		{model.ExamStatusPublished, false},
	}
	for _, tt := range tests {
		if got := CanDelete(tt.status); got != tt.want {
			t.Errorf("CanDelete(%s) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
