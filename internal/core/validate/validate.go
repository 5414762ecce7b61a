// Package validate checks a scene description before anything else touches it
package validate

import (
	"strings"
	"unicode/utf8"

	perr "animefinder/internal/platform/errors"
)

// Length bounds on the trimmed description, in runes
const (
	MinLength = 10
	MaxLength = 1000
)

// Messages returned for each failed check
const (
	MsgEmpty    = "Please describe the anime scene"
	MsgTooShort = "Please provide a more detailed description (at least 10 characters)"
	MsgTooLong  = "Description is too long (maximum 1000 characters)"
)

// Result is the outcome of Description
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Description runs the checks in order: empty, too short, too long
func Description(description string) Result {
	d := strings.TrimSpace(description)
	n := utf8.RuneCountInString(d)
	switch {
	case n == 0:
		return Result{Message: MsgEmpty}
	case n < MinLength:
		return Result{Message: MsgTooShort}
	case n > MaxLength:
		return Result{Message: MsgTooLong}
	}
	return Result{Valid: true}
}

// Err returns nil for a valid result, otherwise a Validation error on field description
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return perr.WithField(perr.Validationf("%s", r.Message), "description")
}
