package quiz

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID turns the raw id token typed after a command word into a record id.
// An empty token means the id was not supplied.
func ParseID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingParameter
	}
	if raw[0] == '+' || raw[0] == '-' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParameter, raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidParameter, raw)
	}
	return id, nil
}

// Matches compares a user answer with the stored one ignoring case and
// surrounding whitespace.
func Matches(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

// validate rejects blank text. Valid text is stored as given.
func validate(question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return fmt.Errorf("%w: question must not be empty", ErrValidation)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: answer must not be empty", ErrValidation)
	}
	return nil
}
