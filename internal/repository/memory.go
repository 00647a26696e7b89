package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// MemoryStore is the in-memory implementation of ExamStore and
// ModerationStore. It backs unit tests and local development; the services
// cannot tell it apart from the PostgreSQL implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	exams   map[uuid.UUID]model.Exam
	seq     map[uuid.UUID]int // insertion order for stable listings
	nextSeq int
	records []model.ModerationRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		exams: make(map[uuid.UUID]model.Exam),
		seq:   make(map[uuid.UUID]int),
	}
}

// GetByID returns a deep copy of the stored exam.
func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*model.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.exams[id]
	if !ok {
		return nil, examerr.ErrNotFound
	}
	out := e.Clone()
	return &out, nil
}

// Save inserts or version-checks-and-updates an exam. The caller's value is
// updated with the new version stamp on success.
func (s *MemoryStore) Save(_ context.Context, exam *model.Exam) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored, exists := s.exams[exam.ID]

	if exam.Version == 0 {
		if exists {
			return examerr.ErrConflict
		}
		if exam.ID == uuid.Nil {
			exam.ID = uuid.New()
		}
		exam.Version = 1
		exam.CreatedAt = now
		exam.UpdatedAt = now
		s.seq[exam.ID] = s.nextSeq
		s.nextSeq++
		s.exams[exam.ID] = exam.Clone()
		return nil
	}

	if !exists {
		return examerr.ErrNotFound
	}
	if stored.Version != exam.Version {
		return examerr.ErrConflict
	}
	exam.Version++
	exam.UpdatedAt = now
	s.exams[exam.ID] = exam.Clone()
	return nil
}

// Delete removes an exam. The lifecycle guard lives in the service; the
// store only reports absence.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exams[id]; !ok {
		return examerr.ErrNotFound
	}
	delete(s.exams, id)
	delete(s.seq, id)
	return nil
}

// List returns matching exams in insertion order.
func (s *MemoryStore) List(_ context.Context, q ExamQuery) ([]model.Exam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Exam, 0, len(s.exams))
	for _, e := range s.exams {
		if q.Skill != "" && e.Skill != q.Skill {
			continue
		}
		if q.Level != "" && e.Level != q.Level {
			continue
		}
		if q.Status != "" && e.Status != q.Status {
			continue
		}
		if q.AuthorID != 0 && e.CreatedBy != q.AuthorID {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

// Append adds a ledger record. Records are never updated or removed.
func (s *MemoryStore) Append(_ context.Context, rec *model.ModerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = len(s.records) + 1
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	s.records = append(s.records, *rec)
	return nil
}

// ListByExam returns the ledger for one exam, oldest first.
func (s *MemoryStore) ListByExam(_ context.Context, examID uuid.UUID) ([]model.ModerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ModerationRecord
	for _, r := range s.records {
		if r.ExamID == examID {
			out = append(out, r)
		}
	}
	return out, nil
}

// MemoryUserStore is the in-memory implementation of UserStore.
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[int]model.User
	nextID int
}

// NewMemoryUserStore creates an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[int]model.User), nextID: 1}
}

// GetByEmail resolves a user account by email (case-insensitive).
func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, examerr.ErrNotFound
}

// GetByID resolves a user account by id.
func (s *MemoryUserStore) GetByID(_ context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, examerr.ErrNotFound
	}
	out := u
	return &out, nil
}

// Create inserts a user account and assigns its id.
func (s *MemoryUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	u.ID = s.nextID
	s.nextID++
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}
