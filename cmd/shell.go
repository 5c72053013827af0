package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/holmes89/quizbank/lib/quiz"
)

var errQuit = errors.New("quit")

type handler func(ctx context.Context, id string) error

// Shell reads a command word plus an optional id per line and runs it
// against one Engine. Errors from a command are printed and the shell
// keeps going; only quit or a closed input ends it.
type Shell struct {
	engine   *quiz.Engine
	prompt   quiz.Prompter
	out      io.Writer
	logger   *zap.Logger
	commands map[string]handler
}

func NewShell(questions quiz.QuestionService, prompter quiz.Prompter, out io.Writer, logger *zap.Logger, opts ...quiz.Option) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Shell{
		prompt: prompter,
		out:    out,
		logger: logger,
	}
	opts = append([]quiz.Option{
		quiz.WithReporter(&consoleReporter{out: out}),
		quiz.WithLogger(logger),
	}, opts...)
	s.engine = quiz.NewEngine(questions, prompter, opts...)
	s.commands = map[string]handler{
		"help":    s.help,
		"h":       s.help,
		"list":    s.list,
		"show":    s.show,
		"add":     s.add,
		"delete":  s.delete,
		"edit":    s.edit,
		"test":    s.test,
		"play":    s.play,
		"p":       s.play,
		"credits": s.credits,
		"quit":    s.quit,
		"q":       s.quit,
	}
	return s
}

func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "quizbank: type help to see the available commands.")
	for {
		line, err := s.prompt.Ask(ctx, "quizbank>")
		if err != nil {
			if errors.Is(err, quiz.ErrInputClosed) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		if err := s.Exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, quiz.ErrInputClosed) {
				fmt.Fprintln(s.out, "Bye!")
				return nil
			}
			return err
		}
	}
}

// Exec runs one typed line. User-facing errors are rendered here; only
// errQuit and quiz.ErrInputClosed are returned.
func (s *Shell) Exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var id string
	if len(fields) > 1 {
		id = fields[1]
	}
	err := s.Dispatch(ctx, strings.ToLower(fields[0]), id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errQuit), errors.Is(err, quiz.ErrInputClosed):
		return err
	}
	s.logger.Debug("command failed", zap.String("command", fields[0]), zap.Error(err))
	fmt.Fprintf(s.out, "Error: %v\n", err)
	return nil
}

// Dispatch runs the handler for word and returns its error unrendered.
func (s *Shell) Dispatch(ctx context.Context, word, id string) error {
	h, ok := s.commands[word]
	if !ok {
		return fmt.Errorf("unknown command %q, type help to see the available commands", word)
	}
	return h(ctx, id)
}

func (s *Shell) help(context.Context, string) error {
	fmt.Fprint(s.out, helpText)
	return nil
}

func (s *Shell) credits(context.Context, string) error {
	fmt.Fprint(s.out, creditsText)
	return nil
}

func (s *Shell) quit(context.Context, string) error {
	return errQuit
}

func (s *Shell) list(ctx context.Context, _ string) error {
	records, err := s.engine.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(s.out, "   There are no questions yet, use add to create one.")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(s.out, "   [%d]: %s\n", rec.ID, rec.Question)
	}
	return nil
}

func (s *Shell) show(ctx context.Context, id string) error {
	rec, err := s.engine.Show(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "   %s\n", rec)
	return nil
}

func (s *Shell) add(ctx context.Context, _ string) error {
	rec, err := s.engine.Add(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "   Added %s\n", rec)
	return nil
}

func (s *Shell) delete(ctx context.Context, id string) error {
	deleted, err := s.engine.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "   Deleted question [%d]\n", deleted)
	return nil
}

func (s *Shell) edit(ctx context.Context, id string) error {
	rec, err := s.engine.Edit(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "   Question [%d] changed to: %s => %s\n", rec.ID, rec.Question, rec.Answer)
	return nil
}

func (s *Shell) test(ctx context.Context, id string) error {
	res, err := s.engine.Test(ctx, id)
	if err != nil {
		return err
	}
	if res.Correct {
		fmt.Fprintln(s.out, "Correct")
	} else {
		fmt.Fprintln(s.out, "Incorrect")
	}
	return nil
}

func (s *Shell) play(ctx context.Context, _ string) error {
	_, err := s.engine.Play(ctx)
	return err
}

type consoleReporter struct {
	out io.Writer
}

func (r *consoleReporter) Correct(score int) {
	fmt.Fprintf(r.out, "CORRECT - %d right so far.\n", score)
}

func (r *consoleReporter) Incorrect(int) {
	fmt.Fprintln(r.out, "INCORRECT.")
}

func (r *consoleReporter) Finished(res *quiz.PlayResult) {
	if res.Outcome == quiz.OutcomeExhausted {
		fmt.Fprintln(r.out, "Nothing left to ask.")
	}
	fmt.Fprintf(r.out, "End of the game. Score: %d\n", res.Score)
}

const helpText = `Commands:
   h|help - Show this help.
   list - List the existing questions.
   show <id> - Show the question and answer of the given quiz.
   add - Add a new quiz interactively.
   delete <id> - Delete the given quiz.
   edit <id> - Edit the given quiz.
   test <id> - Try the given quiz.
   p|play - Play asking every quiz in random order.
   credits - Credits.
   q|quit - Leave the program.
`

const creditsText = `Authors:
   holmes89
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "start the interactive quiz shell",
	Args:  cobra.NoArgs,
	RunE:  app.Shell,
}

func (app *App) Shell(cmd *cobra.Command, args []string) error {
	return app.shell(cmd).Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
