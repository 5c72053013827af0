package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/holmes89/quizbank/lib/quiz"
)

var _ quiz.QuestionRepository = (*MemoryRepo)(nil)

// MemoryRepo keeps the bank in process memory. Ids come from a counter that
// only moves forward, so deleted ids are never handed out again.
type MemoryRepo struct {
	mu      sync.RWMutex
	lastID  int64
	records []quiz.Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(_ context.Context, b *quiz.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	b.ID = r.lastID
	r.records = append(r.records, *b)
	return nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, b *quiz.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", quiz.ErrNotFound, id)
	}
	r.records[i].Question = b.Question
	r.records[i].Answer = b.Answer
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", quiz.ErrNotFound, id)
	}
	r.records = append(r.records[:i], r.records[i+1:]...)
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, id int64) (*quiz.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %d", quiz.ErrNotFound, id)
	}
	rec := r.records[i]
	return &rec, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]*quiz.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*quiz.Record, len(r.records))
	for i := range r.records {
		rec := r.records[i]
		out[i] = &rec
	}
	return out, nil
}

func (r *MemoryRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}

// index finds id by linear scan; records stay in id order.
func (r *MemoryRepo) index(id int64) int {
	for i := range r.records {
		if r.records[i].ID == id {
			return i
		}
	}
	return -1
}
