package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/holmes89/quizbank/lib/quiz"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}",
	Valid:   "{{ . }}",
	Invalid: "{{ . }}",
	Success: "{{ . }}",
}

// Terminal prompts through promptui. AskDefault places the initial text in
// the line buffer so the user can edit it in place.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func (t *Terminal) Ask(ctx context.Context, label string) (string, error) {
	return t.run(ctx, label, "")
}

func (t *Terminal) AskDefault(ctx context.Context, label, initial string) (string, error) {
	return t.run(ctx, label, initial)
}

func (t *Terminal) run(ctx context.Context, label, initial string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", quiz.ErrInputClosed, err)
	}
	p := &promptui.Prompt{
		Label:     formatLabel(label),
		Default:   initial,
		AllowEdit: initial != "",
		Templates: templates,
		Stdin:     t.Stdin,
		Stdout:    t.Stdout,
	}
	v, err := p.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrEOF) ||
			errors.Is(err, promptui.ErrInterrupt) ||
			errors.Is(err, promptui.ErrAbort) {
			return "", fmt.Errorf("%w: %v", quiz.ErrInputClosed, err)
		}
		return "", err
	}
	return strings.TrimSpace(v), nil
}
