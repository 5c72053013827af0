package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/holmes89/quizbank/lib/quiz"
)

// Line reads one line per prompt from r and writes labels to w. It has no
// editable buffer, so AskDefault behaves like Ask.
type Line struct {
	r *bufio.Reader
	w io.Writer
}

func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{r: bufio.NewReader(r), w: w}
}

func (l *Line) Ask(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", quiz.ErrInputClosed, err)
	}
	if _, err := io.WriteString(l.w, formatLabel(label)); err != nil {
		return "", fmt.Errorf("%w: %v", quiz.ErrInputClosed, err)
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		// a last line without a newline still counts as an answer
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("%w: %v", quiz.ErrInputClosed, err)
	}
	return strings.TrimSpace(line), nil
}

func (l *Line) AskDefault(ctx context.Context, label, _ string) (string, error) {
	return l.Ask(ctx, label)
}
