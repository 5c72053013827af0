package prompt

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/holmes89/quizbank/lib/quiz"
)

var (
	_ quiz.Prompter = (*Terminal)(nil)
	_ quiz.Prompter = (*Line)(nil)
)

// New picks the line-editing Terminal prompter when in is a terminal and the
// plain Line prompter otherwise (pipes, files, redirected input).
func New(in *os.File, out io.Writer) quiz.Prompter {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		return newTerminal(in, out)
	}
	return NewLine(in, out)
}

func newTerminal(in io.ReadCloser, out io.Writer) *Terminal {
	return &Terminal{Stdin: in, Stdout: writeCloser(out)}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeCloser lets promptui write to out without ever closing it.
func writeCloser(out io.Writer) io.WriteCloser {
	return nopWriteCloser{out}
}

// formatLabel ends a label with ": " unless it already ends in a prompt
// character such as '>' or '?'.
func formatLabel(label string) string {
	label = strings.TrimRight(label, " ")
	if label == "" {
		return "> "
	}
	switch label[len(label)-1] {
	case '>', '?', ':', '$', '#':
		return label + " "
	}
	return label + ": "
}
