package form

import (
	"context"
	"fmt"
	"reflect"
)

// Asker is the part of quiz.Prompter a form needs.
type Asker interface {
	AskDefault(ctx context.Context, label, initial string) (string, error)
}

// Form fills the exported string fields of a struct one prompt at a time.
// The label comes from the `prompt` struct tag, falling back to the field
// name; `prompt:"-"` skips the field. The first prompt error stops the form.
type Form[T any] struct {
	asker Asker
	err   error
}

func New[T any](asker Asker) *Form[T] {
	return &Form[T]{asker: asker}
}

// Parse prompts for every field of initial in declaration order, offering
// the current value as the editable starting text. On error the partially
// filled value is discarded and initial is returned unchanged.
func (f *Form[T]) Parse(ctx context.Context, initial T) (T, error) {
	t := initial
	e := reflect.ValueOf(&t).Elem()
	if e.Kind() != reflect.Struct {
		return initial, fmt.Errorf("form: %s is not a struct", e.Type())
	}
	for _, v := range reflect.VisibleFields(e.Type()) {
		if !v.IsExported() || v.Anonymous {
			continue
		}
		label := v.Tag.Get("prompt")
		if label == "-" {
			continue
		}
		if label == "" {
			label = v.Name
		}
		field := e.FieldByIndex(v.Index)
		if field.Kind() != reflect.String {
			continue
		}
		val := field.String()
		f.Add(ctx, &val, label)
		field.SetString(val)
	}
	if err := f.Valid(); err != nil {
		return initial, err
	}
	return t, nil
}

// Add asks for a single value and stores it in field.
func (f *Form[T]) Add(ctx context.Context, field *string, label string) {
	if f.err != nil {
		return
	}
	val, err := f.asker.AskDefault(ctx, label, *field)
	if err != nil {
		f.err = err
		return
	}
	*field = val
}

func (f *Form[T]) Valid() error {
	return f.err
}
