package quiz

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var _ QuestionService = (*questionService)(nil)

type questionService struct {
	questionRepo QuestionRepository
	logger       *zap.Logger
}

// NewQuestionService wraps a repository with the only business rule of the
// bank: questions and answers must not be blank.
func NewQuestionService(
	questionRepo QuestionRepository,
	logger *zap.Logger,
) QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &questionService{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

func (srv *questionService) Add(ctx context.Context, question, answer string) (*Record, error) {
	if err := validate(question, answer); err != nil {
		return nil, err
	}
	rec := &Record{Question: question, Answer: answer}
	if err := srv.questionRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	srv.logger.Debug("question created", zap.Int64("question_id", rec.ID))
	return rec, nil
}

func (srv *questionService) List(ctx context.Context) ([]*Record, error) {
	return srv.questionRepo.List(ctx)
}

func (srv *questionService) Get(ctx context.Context, id int64) (*Record, error) {
	return srv.questionRepo.Get(ctx, id)
}

func (srv *questionService) Update(ctx context.Context, id int64, question, answer string) (*Record, error) {
	if err := validate(question, answer); err != nil {
		return nil, err
	}
	rec := &Record{ID: id, Question: question, Answer: answer}
	if err := srv.questionRepo.Update(ctx, id, rec); err != nil {
		return nil, err
	}
	srv.logger.Debug("question updated", zap.Int64("question_id", id))
	return rec, nil
}

func (srv *questionService) Delete(ctx context.Context, id int64) error {
	if err := srv.questionRepo.Delete(ctx, id); err != nil {
		return err
	}
	srv.logger.Debug("question deleted", zap.Int64("question_id", id))
	return nil
}

func (srv *questionService) Count(ctx context.Context) (int, error) {
	return srv.questionRepo.Count(ctx)
}
