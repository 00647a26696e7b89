package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/vstepready/vstep-backend/internal/content"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

func draftExam(title string, skill model.Skill, level model.Level, authorID int) *model.Exam {
	return &model.Exam{
		Title:     title,
		Level:     level,
		Skill:     skill,
		Content:   content.Default(skill),
		Status:    model.ExamStatusDraft,
		CreatedBy: authorID,
	}
}

func TestMemoryStoreSaveAssignsIdentityAndVersion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exam := draftExam("Listening B1", model.SkillListening, model.LevelB1, 1)
	if err := store.Save(ctx, exam); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if exam.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
	if got, want := exam.Version, 1; got != want {
		t.Errorf("version = %d, want %d", got, want)
	}
	if exam.CreatedAt.IsZero() || exam.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestMemoryStoreVersionConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exam := draftExam("Reading A2", model.SkillReading, model.LevelA2, 1)
	if err := store.Save(ctx, exam); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Two actors load the same snapshot.
	first, _ := store.GetByID(ctx, exam.ID)
	second, _ := store.GetByID(ctx, exam.ID)

	first.Title = "Reading A2 (edited)"
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second.Title = "Reading A2 (stale edit)"
	err := store.Save(ctx, second)
	if !errors.Is(err, examerr.ErrConflict) {
		t.Fatalf("stale save err = %v, want ErrConflict", err)
	}

	// The winner's write survives.
	stored, _ := store.GetByID(ctx, exam.ID)
	if got, want := stored.Title, "Reading A2 (edited)"; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if got, want := stored.Version, 2; got != want {
		t.Errorf("version = %d, want %d", got, want)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exam := draftExam("Reading B2", model.SkillReading, model.LevelB2, 1)
	if err := store.Save(ctx, exam); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, _ := store.GetByID(ctx, exam.ID)
	loaded.Content.Reading.Parts[0].Passage = "mutated outside the store"

	again, _ := store.GetByID(ctx, exam.ID)
	if again.Content.Reading.Parts[0].Passage != "" {
		t.Error("store leaked internal state to a caller")
	}
}

func TestMemoryStoreListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := draftExam("First", model.SkillReading, model.LevelB1, 1)
	b := draftExam("Second", model.SkillListening, model.LevelB1, 2)
	c := draftExam("Third", model.SkillReading, model.LevelC1, 1)
	for _, e := range []*model.Exam{a, b, c} {
		if err := store.Save(ctx, e); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	all, err := store.List(ctx, ExamQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got, want := len(all), 3; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if all[i].Title != want {
			t.Errorf("all[%d] = %q, want %q (insertion order)", i, all[i].Title, want)
		}
	}

	reading, _ := store.List(ctx, ExamQuery{Skill: model.SkillReading})
	if got, want := len(reading), 2; got != want {
		t.Errorf("reading = %d, want %d", got, want)
	}

	mine, _ := store.List(ctx, ExamQuery{AuthorID: 2})
	if len(mine) != 1 || mine[0].Title != "Second" {
		t.Errorf("author filter = %v, want only Second", mine)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	exam := draftExam("Doomed", model.SkillWriting, model.LevelB1, 1)
	if err := store.Save(ctx, exam); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, exam.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, exam.ID); !errors.Is(err, examerr.ErrNotFound) {
		t.Errorf("get after delete err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, uuid.New()); !errors.Is(err, examerr.ErrNotFound) {
		t.Errorf("delete missing err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreLedgerAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	examID := uuid.New()

	recs := []model.ModerationRecord{
		{ExamID: examID, ReviewerID: 2, Decision: model.DecisionRejected, Reason: "too short"},
		{ExamID: examID, ReviewerID: 2, Decision: model.DecisionApproved},
		{ExamID: uuid.New(), ReviewerID: 3, Decision: model.DecisionApproved},
	}
	for i := range recs {
		if err := store.Append(ctx, &recs[i]); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := store.ListByExam(ctx, examID)
	if err != nil {
		t.Fatalf("ListByExam: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("records = %d, want 2", len(got))
	}
	if got[0].Decision != model.DecisionRejected || got[1].Decision != model.DecisionApproved {
		t.Errorf("order = %v, want oldest first", got)
	}
}
