package prompt

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes89/quizbank/lib/quiz"
)

func TestLineAsk(t *testing.T) {
	var out bytes.Buffer
	l := NewLine(strings.NewReader("  Paris \nRome"), &out)
	ctx := context.Background()

	got, err := l.Ask(ctx, "capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got)

	got, err = l.AskDefault(ctx, "Enter the answer", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "Rome", got)

	_, err = l.Ask(ctx, "quizbank>")
	assert.ErrorIs(t, err, quiz.ErrInputClosed)

	assert.Equal(t, "capital of France? Enter the answer: quizbank> ", out.String())
}

func TestLineAskCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	_, err := NewLine(strings.NewReader("answer\n"), &out).Ask(ctx, "q")
	assert.ErrorIs(t, err, quiz.ErrInputClosed)
	assert.Empty(t, out.String())
}

func TestFormatLabel(t *testing.T) {
	testCases := map[string]string{
		"":                 "> ",
		"quizbank>":        "quizbank> ",
		"2+2?":             "2+2? ",
		"Enter a question": "Enter a question: ",
		"name:  ":          "name: ",
		"Capital of Italy": "Capital of Italy: ",
	}
	for label, want := range testCases {
		assert.Equal(t, want, formatLabel(label), "label %q", label)
	}
}

func TestTerminalWritesToOut(t *testing.T) {
	var out bytes.Buffer
	term := newTerminal(io.NopCloser(strings.NewReader("")), &out)
	require.NotNil(t, term.Stdout)

	_, err := io.WriteString(term.Stdout, "Capital of Italy? ")
	require.NoError(t, err)
	require.NoError(t, term.Stdout.Close())
	_, err = io.WriteString(term.Stdout, "Rome")
	require.NoError(t, err)
	assert.Equal(t, "Capital of Italy? Rome", out.String())
}

func TestNewPicksLineForPipes(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	assert.IsType(t, &Line{}, New(r, &bytes.Buffer{}))
}
