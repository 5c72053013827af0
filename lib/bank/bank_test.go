package bank

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holmes89/quizbank/lib/quiz"
	"github.com/holmes89/quizbank/lib/repo"
)

const sample = `questions:
  - question: Capital of Italy
    answer: Rome
  - id: 42
    question: "2+2?"
    answer: "4"
`

func TestDecode(t *testing.T) {
	drafts, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, []quiz.Draft{
		{Question: "Capital of Italy", Answer: "Rome"},
		{Question: "2+2?", Answer: "4"},
	}, drafts)
}

func TestDecodeEmpty(t *testing.T) {
	drafts, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestDecodeRejectsBlankEntries(t *testing.T) {
	_, err := Decode(strings.NewReader(`questions:
  - question: Capital of Italy
    answer: Rome
  - question: "   "
    answer: x
`))
	assert.ErrorIs(t, err, quiz.ErrValidation)
	assert.Contains(t, err.Error(), "entry 2")

	_, err = Decode(strings.NewReader("questions: [1, 2"))
	assert.Error(t, err)
}

func TestImportAndExport(t *testing.T) {
	ctx := context.Background()
	svc := quiz.NewQuestionService(repo.NewMemoryRepo(), nil)

	n, err := Import(ctx, svc, Defaults())
	require.NoError(t, err)
	assert.Equal(t, len(Defaults()), n)

	records, err := svc.List(ctx)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, records))
	assert.Contains(t, buf.String(), "question: Capital of Portugal")

	drafts, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), drafts)
}

func TestImportStopsAtInvalidDraft(t *testing.T) {
	ctx := context.Background()
	svc := quiz.NewQuestionService(repo.NewMemoryRepo(), nil)
	n, err := Import(ctx, svc, []quiz.Draft{
		{Question: "a", Answer: "1"},
		{Question: "b", Answer: ""},
		{Question: "c", Answer: "3"},
	})
	assert.ErrorIs(t, err, quiz.ErrValidation)
	assert.Equal(t, 1, n)
}
