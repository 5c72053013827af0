package quiz

import "context"

type QuestionRepository interface {
	Create(context.Context, *Record) error
	Update(context.Context, int64, *Record) error
	Delete(context.Context, int64) error
	Get(context.Context, int64) (*Record, error)
	List(context.Context) ([]*Record, error)
	Count(context.Context) (int, error)
}

type QuestionService interface {
	Add(ctx context.Context, question, answer string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	Update(ctx context.Context, id int64, question, answer string) (*Record, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// Prompter asks the user one thing at a time and returns the trimmed reply.
// AskDefault pre-fills an editable buffer with initial when the front end
// supports it and starts from an empty buffer otherwise.
type Prompter interface {
	Ask(ctx context.Context, label string) (string, error)
	AskDefault(ctx context.Context, label, initial string) (string, error)
}

// Reporter receives play-mode progress as it happens.
type Reporter interface {
	Correct(score int)
	Incorrect(score int)
	Finished(result *PlayResult)
}

type nopReporter struct{}

func (nopReporter) Correct(int)          {}
func (nopReporter) Incorrect(int)        {}
func (nopReporter) Finished(*PlayResult) {}
