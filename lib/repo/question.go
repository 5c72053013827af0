package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/holmes89/quizbank/lib/quiz"
)

type QuestionRepo struct {
	*Conn
}

var _ quiz.QuestionRepository = (*QuestionRepo)(nil)

func (r *QuestionRepo) builder() sq.StatementBuilderType {
	var format sq.PlaceholderFormat = sq.Dollar
	if r.driver == DriverSQLite {
		format = sq.Question
	}
	return sq.StatementBuilder.PlaceholderFormat(format).RunWith(r.conn)
}

func (r *QuestionRepo) Create(ctx context.Context, b *quiz.Record) error {
	return r.builder().Insert("questions").
		Columns("question", "answer").
		Values(
			b.Question,
			b.Answer).
		Suffix("RETURNING id").
		QueryRowContext(ctx).
		Scan(&b.ID)
}

func (r *QuestionRepo) Update(ctx context.Context, id int64, b *quiz.Record) error {
	res, err := r.builder().Update("questions").
		Set("question", b.Question).
		Set("answer", b.Answer).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectRow(res, id)
}

func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.builder().Delete("questions").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectRow(res, id)
}

func (r *QuestionRepo) Get(ctx context.Context, id int64) (*quiz.Record, error) {
	question := &quiz.Record{}
	err := r.builder().
		Select("id", "question", "answer").
		From("questions").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(
			&question.ID,
			&question.Question,
			&question.Answer,
		)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", quiz.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return question, nil
}

func (r *QuestionRepo) List(ctx context.Context) ([]*quiz.Record, error) {
	var questions []*quiz.Record

	rows, err := r.builder().
		Select("id", "question", "answer").
		From("questions").
		OrderBy("id").
		QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		question := &quiz.Record{}
		err := rows.Scan(
			&question.ID,
			&question.Question,
			&question.Answer,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (r *QuestionRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.builder().
		Select("COUNT(*)").
		From("questions").
		QueryRowContext(ctx).
		Scan(&n)
	return n, err
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", quiz.ErrNotFound, id)
	}
	return nil
}
