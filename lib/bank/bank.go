// Package bank reads and writes question banks as YAML documents of the form
//
//	questions:
//	  - question: Capital of Italy?
//	    answer: Rome
//
// Ids in an imported file are ignored; the store assigns new ones.
package bank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/holmes89/quizbank/lib/quiz"
)

type File struct {
	Questions []quiz.Record `yaml:"questions"`
}

// Decode parses a bank and rejects it as a whole if any entry is blank.
func Decode(r io.Reader) ([]quiz.Draft, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	drafts := make([]quiz.Draft, 0, len(f.Questions))
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return nil, fmt.Errorf("entry %d: %w: question and answer are required", i+1, quiz.ErrValidation)
		}
		drafts = append(drafts, quiz.Draft{Question: q.Question, Answer: q.Answer})
	}
	return drafts, nil
}

func Encode(w io.Writer, records []*quiz.Record) error {
	f := File{Questions: make([]quiz.Record, 0, len(records))}
	for _, rec := range records {
		f.Questions = append(f.Questions, *rec)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return err
	}
	return enc.Close()
}

// Import adds every draft in order and returns how many were stored.
func Import(ctx context.Context, svc quiz.QuestionService, drafts []quiz.Draft) (int, error) {
	for i, d := range drafts {
		if _, err := svc.Add(ctx, d.Question, d.Answer); err != nil {
			return i, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return len(drafts), nil
}

// Defaults is the bank a fresh store is seeded with.
func Defaults() []quiz.Draft {
	return []quiz.Draft{
		{Question: "Capital of Italy", Answer: "Rome"},
		{Question: "Capital of France", Answer: "Paris"},
		{Question: "Capital of Spain", Answer: "Madrid"},
		{Question: "Capital of Portugal", Answer: "Lisbon"},
	}
}
