package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/content"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/repository"
)

func bankFixture() []model.Exam {
	return []model.Exam{
		{Title: "Climate Change Reading", CreatedByName: "Thu Ha"},
		{Title: "Daily Routines", CreatedByName: "Van Nam"},
		{Title: "Ocean currents", CreatedByName: "Climate Team"},
		{Title: "City Life", CreatedByName: "Lan Anh"},
		{Title: "MICROCLIMATE studies", CreatedByName: "Thu Ha"},
	}
}

func TestSearchMatchesTitleAndAuthor(t *testing.T) {
	got := Search(bankFixture(), "climate")

	if len(got) != 3 {
		t.Fatalf("matches = %d, want 3", len(got))
	}
	// Stable source order, no relevance re-sort.
	wantTitles := []string{"Climate Change Reading", "Ocean currents", "MICROCLIMATE studies"}
	for i, want := range wantTitles {
		if got[i].Title != want {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, want)
		}
	}
}

func TestSearchEmptyTextMatchesAll(t *testing.T) {
	exams := bankFixture()
	if got := Search(exams, "  "); len(got) != len(exams) {
		t.Errorf("matches = %d, want %d", len(got), len(exams))
	}
}

func TestPaginateBeyondRange(t *testing.T) {
	items, p := Paginate(bankFixture(), 99, 10)

	if len(items) != 0 {
		t.Errorf("items = %d, want empty slice", len(items))
	}
	if items == nil {
		t.Error("items is nil, want empty non-nil slice")
	}
	if got, want := p.TotalPages, 1; got != want {
		t.Errorf("total pages = %d, want %d", got, want)
	}
	if got, want := p.TotalItems, 5; got != want {
		t.Errorf("total items = %d, want %d", got, want)
	}
}

func TestPaginateSlicing(t *testing.T) {
	exams := bankFixture()

	first, p := Paginate(exams, 1, 2)
	if len(first) != 2 || first[0].Title != "Climate Change Reading" {
		t.Errorf("page 1 = %v", first)
	}
	if got, want := p.TotalPages, 3; got != want {
		t.Errorf("total pages = %d, want %d", got, want)
	}

	last, _ := Paginate(exams, 3, 2)
	if len(last) != 1 || last[0].Title != "MICROCLIMATE studies" {
		t.Errorf("page 3 = %v", last)
	}

	// Garbage input clamps instead of failing.
	clamped, p := Paginate(exams, 0, -5)
	if len(clamped) != 5 {
		t.Errorf("clamped page = %d items, want all 5", len(clamped))
	}
	if got, want := p.Page, 1; got != want {
		t.Errorf("page = %d, want %d", got, want)
	}
}

func TestQueryAllSentinelAndFilters(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewBankService(store, testRedis(), zerolog.Nop())

	seed := []struct {
		title string
		skill model.Skill
		level model.Level
	}{
		{"Climate Reading B1", model.SkillReading, model.LevelB1},
		{"Listening Warmup", model.SkillListening, model.LevelB1},
		{"Climate Reading C1", model.SkillReading, model.LevelC1},
	}
	for _, s := range seed {
		exam := &model.Exam{
			Title:     s.title,
			Skill:     s.skill,
			Level:     s.level,
			Content:   content.Default(s.skill),
			Status:    model.ExamStatusDraft,
			CreatedBy: teacher.ID,
		}
		if err := store.Save(ctx, exam); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// "all" disables a dimension entirely.
	exams, _, err := svc.Query(ctx, BankFilter{Skill: "all", Level: "all", Status: "all"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got, want := len(exams), 3; got != want {
		t.Fatalf("all = %d, want %d", got, want)
	}

	exams, _, err = svc.Query(ctx, BankFilter{Text: "climate", Skill: "reading", Level: "B1"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(exams) != 1 || exams[0].Title != "Climate Reading B1" {
		t.Errorf("filtered = %v, want only the B1 climate exam", exams)
	}

	// Pagination metadata reflects the filtered set, not the whole bank.
	_, p, err := svc.Query(ctx, BankFilter{Skill: "reading", Page: 1, PerPage: 1})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if got, want := p.TotalItems, 2; got != want {
		t.Errorf("total items = %d, want %d", got, want)
	}
	if got, want := p.TotalPages, 2; got != want {
		t.Errorf("total pages = %d, want %d", got, want)
	}
}
