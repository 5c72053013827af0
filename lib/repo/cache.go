package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/holmes89/quizbank/lib/quiz"
)

var _ quiz.QuestionRepository = (*CachedRepo)(nil)

// CachedRepo keeps single-question lookups in redis in front of another
// repository. Writes go to the inner repository first; redis errors are
// logged and never fail the call.
type CachedRepo struct {
	quiz.QuestionRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRepo(inner quiz.QuestionRepository, client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *CachedRepo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRepo{
		QuestionRepository: inner,
		client:             client,
		ttl:                ttl,
		logger:             logger,
	}
}

func cacheKey(id int64) string {
	return fmt.Sprintf("quizbank:question:%d", id)
}

func (r *CachedRepo) Create(ctx context.Context, b *quiz.Record) error {
	if err := r.QuestionRepository.Create(ctx, b); err != nil {
		return err
	}
	r.store(ctx, b)
	return nil
}

func (r *CachedRepo) Update(ctx context.Context, id int64, b *quiz.Record) error {
	if err := r.QuestionRepository.Update(ctx, id, b); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedRepo) Delete(ctx context.Context, id int64) error {
	if err := r.QuestionRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *CachedRepo) Get(ctx context.Context, id int64) (*quiz.Record, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	switch {
	case err == nil:
		rec := &quiz.Record{}
		if err := json.Unmarshal(data, rec); err == nil {
			return rec, nil
		}
		r.logger.Warn("discarding corrupt cache entry", zap.Int64("question_id", id))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("cache read failed", zap.Int64("question_id", id), zap.Error(err))
	}

	rec, err := r.QuestionRepository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, rec)
	return rec, nil
}

func (r *CachedRepo) store(ctx context.Context, rec *quiz.Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKey(rec.ID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", zap.Int64("question_id", rec.ID), zap.Error(err))
	}
}

func (r *CachedRepo) evict(ctx context.Context, id int64) {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		r.logger.Warn("cache evict failed", zap.Int64("question_id", id), zap.Error(err))
	}
}
