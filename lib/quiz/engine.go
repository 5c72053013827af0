package quiz

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/holmes89/quizbank/lib/form"
)

type Outcome int

const (
	// OutcomeExhausted means every question of the round was answered correctly.
	OutcomeExhausted Outcome = iota
	// OutcomeMissed means the round stopped at the first wrong answer.
	OutcomeMissed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeMissed:
		return "missed"
	}
	return "unknown"
}

type TestResult struct {
	Record  *Record
	Answer  string
	Correct bool
}

type PlayResult struct {
	SessionID string
	Score     int
	Asked     []int64 // presented question ids, in order
	Outcome   Outcome
	Remaining int
}

type state int

const (
	stateSelecting state = iota
	stateAsking
	stateScoring
	stateEnded
)

// session is the state of one play round. remaining only ever shrinks.
type session struct {
	id        string
	score     int
	remaining []Record
}

// take removes and returns the i-th remaining record.
func (s *session) take(i int) Record {
	last := len(s.remaining) - 1
	rec := s.remaining[i]
	s.remaining[i] = s.remaining[last]
	s.remaining = s.remaining[:last]
	return rec
}

type Option func(*Engine)

func WithReporter(r Reporter) Option {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithPicker replaces the uniform random source used to choose the next
// question. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(e *Engine) {
		if pick != nil {
			e.pick = pick
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs the interactive flows of one user on top of the question
// service. It is sequential: each method issues at most one prompt at a
// time and returns only once the flow has reached its end.
type Engine struct {
	questions QuestionService
	prompt    Prompter
	reporter  Reporter
	pick      func(n int) int
	logger    *zap.Logger
}

func NewEngine(questions QuestionService, prompt Prompter, opts ...Option) *Engine {
	e := &Engine{
		questions: questions,
		prompt:    prompt,
		reporter:  nopReporter{},
		pick:      rand.IntN,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) List(ctx context.Context) ([]*Record, error) {
	return e.questions.List(ctx)
}

func (e *Engine) Count(ctx context.Context) (int, error) {
	return e.questions.Count(ctx)
}

func (e *Engine) Show(ctx context.Context, rawID string) (*Record, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return e.questions.Get(ctx, id)
}

func (e *Engine) Add(ctx context.Context) (*Record, error) {
	draft, err := form.New[Draft](e.prompt).Parse(ctx, Draft{})
	if err != nil {
		return nil, err
	}
	return e.questions.Add(ctx, draft.Question, draft.Answer)
}

// Edit offers the stored question and answer as editable text and saves
// the replacements under the same id. Nothing is saved unless both answers
// arrive.
func (e *Engine) Edit(ctx context.Context, rawID string) (*Record, error) {
	rec, err := e.Show(ctx, rawID)
	if err != nil {
		return nil, err
	}
	draft, err := form.New[Draft](e.prompt).Parse(ctx, Draft{
		Question: rec.Question,
		Answer:   rec.Answer,
	})
	if err != nil {
		return nil, err
	}
	return e.questions.Update(ctx, rec.ID, draft.Question, draft.Answer)
}

func (e *Engine) Delete(ctx context.Context, rawID string) (int64, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return 0, err
	}
	if err := e.questions.Delete(ctx, id); err != nil {
		return 0, err
	}
	return id, nil
}

// Test asks a single question and reports whether the answer was right.
func (e *Engine) Test(ctx context.Context, rawID string) (*TestResult, error) {
	rec, err := e.Show(ctx, rawID)
	if err != nil {
		return nil, err
	}
	answer, err := e.prompt.Ask(ctx, rec.Question)
	if err != nil {
		return nil, err
	}
	res := &TestResult{
		Record:  rec,
		Answer:  answer,
		Correct: Matches(answer, rec.Answer),
	}
	e.logger.Debug("test answered",
		zap.Int64("question_id", rec.ID),
		zap.Bool("correct", res.Correct))
	return res, nil
}

// Play runs one round over a snapshot of the whole bank. Questions are
// drawn at random without replacement and the round ends at the first
// wrong answer or when nothing is left to ask.
func (e *Engine) Play(ctx context.Context) (*PlayResult, error) {
	records, err := e.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	sess := &session{
		id:        uuid.NewString(),
		remaining: make([]Record, 0, len(records)),
	}
	for _, rec := range records {
		sess.remaining = append(sess.remaining, *rec)
	}
	logger := e.logger.With(zap.String("session_id", sess.id))
	logger.Debug("play started", zap.Int("questions", len(sess.remaining)))

	res := &PlayResult{SessionID: sess.id}
	var (
		current Record
		answer  string
	)
	for st := stateSelecting; st != stateEnded; {
		switch st {
		case stateSelecting:
			if len(sess.remaining) == 0 {
				res.Outcome = OutcomeExhausted
				st = stateEnded
				continue
			}
			current = sess.take(e.pick(len(sess.remaining)))
			res.Asked = append(res.Asked, current.ID)
			st = stateAsking
		case stateAsking:
			answer, err = e.prompt.Ask(ctx, current.Question)
			if err != nil {
				logger.Debug("play aborted", zap.Error(err))
				return nil, err
			}
			st = stateScoring
		case stateScoring:
			if Matches(answer, current.Answer) {
				sess.score++
				e.reporter.Correct(sess.score)
				st = stateSelecting
				continue
			}
			e.reporter.Incorrect(sess.score)
			res.Outcome = OutcomeMissed
			st = stateEnded
		}
	}
	res.Score = sess.score
	res.Remaining = len(sess.remaining)
	logger.Debug("play finished",
		zap.Int("score", res.Score),
		zap.Stringer("outcome", res.Outcome))
	e.reporter.Finished(res)
	return res, nil
}
