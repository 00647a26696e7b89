package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/vstepready/vstep-backend/internal/config"
	"github.com/vstepready/vstep-backend/internal/model"
	"github.com/vstepready/vstep-backend/internal/repository"
	"github.com/vstepready/vstep-backend/internal/response"
)

// ErrPoolEmpty is returned when the random-selection pool has no published
// exam for the requested skill and level.
var ErrPoolEmpty = errors.New("no published exams in the selection pool")

// FilterAll is the sentinel that disables a filter dimension.
const FilterAll = "all"

// BankFilter is the read-side query over the exam bank. Text matches title
// and author name case-insensitively; the other dimensions are exact with
// "all" (or empty) meaning no filter.
type BankFilter struct {
	Text     string
	Skill    string
	Level    string
	Status   string
	AuthorID int
	Page     int
	PerPage  int
}

// BankService implements read-only projections over the exam collection.
// It never mutates an exam.
type BankService struct {
	exams repository.ExamStore
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewBankService creates a new BankService.
func NewBankService(exams repository.ExamStore, rdb *redis.Client, log zerolog.Logger) *BankService {
	return &BankService{
		exams: exams,
		rdb:   rdb,
		log:   log.With().Str("component", "bank_service").Logger(),
	}
}

// Query filters, searches and paginates the bank. Results keep the store's
// stable creation order; there is no relevance re-sort.
func (s *BankService) Query(ctx context.Context, f BankFilter) ([]model.Exam, *response.Pagination, error) {
	q := repository.ExamQuery{AuthorID: f.AuthorID}
	if v := normalizeFilter(f.Skill); v != "" {
		q.Skill = model.Skill(v)
	}
	if v := normalizeFilter(f.Level); v != "" {
		q.Level = model.Level(v)
	}
	if v := normalizeFilter(f.Status); v != "" {
		q.Status = model.ExamStatus(v)
	}

	exams, err := s.exams.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	filtered := Search(exams, f.Text)
	items, pagination := Paginate(filtered, f.Page, f.PerPage)
	return items, pagination, nil
}

// RandomPublished draws one exam from the published selection pool for the
// given skill and level. This is the surface test assembly consumes.
func (s *BankService) RandomPublished(ctx context.Context, skill model.Skill, level model.Level) (*model.Exam, error) {
	poolKey := config.CacheKey.SelectionPoolKey(string(skill), string(level))

	id, err := s.rdb.SRandMember(ctx, poolKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPoolEmpty
		}
		return nil, fmt.Errorf("draw from pool: %w", err)
	}

	data, err := s.rdb.Get(ctx, config.CacheKey.ExamPayloadKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPoolEmpty
		}
		return nil, fmt.Errorf("get payload: %w", err)
	}

	var exam model.Exam
	if err := exam.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &exam, nil
}

// Search returns the exams whose title or author name contains text,
// case-insensitively, preserving the input order. Empty text matches all.
func Search(exams []model.Exam, text string) []model.Exam {
	if strings.TrimSpace(text) == "" {
		return exams
	}
	needle := strings.ToLower(text)

	out := make([]model.Exam, 0, len(exams))
	for _, e := range exams {
		if strings.Contains(strings.ToLower(e.Title), needle) ||
			strings.Contains(strings.ToLower(e.CreatedByName), needle) {
			out = append(out, e)
		}
	}
	return out
}

// Paginate slices a filtered collection. Pages are 1-indexed; a page past
// the end yields an empty items slice, never an error.
func Paginate(exams []model.Exam, page, perPage int) ([]model.Exam, *response.Pagination) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	total := len(exams)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	items := []model.Exam{}
	if start < total {
		end := start + perPage
		if end > total {
			end = total
		}
		items = exams[start:end]
	}

	return items, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func normalizeFilter(v string) string {
	if strings.EqualFold(v, FilterAll) {
		return ""
	}
	return v
}
