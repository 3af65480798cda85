package schema

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptySeries is returned when there are no observations to work with.
var ErrEmptySeries = errors.New("series has no observations")

// ErrUnorderedSeries is returned when a series is not strictly ascending by date.
var ErrUnorderedSeries = errors.New("series is not strictly ascending by date")

// ParseError reports a row whose date or value text could not be parsed.
type ParseError struct {
	Line  int
	Field string // "date" or "value"
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %s %q: %v", e.Line, e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DuplicateDateError reports two rows sharing the same date.
type DuplicateDateError struct {
	Date      time.Time
	FirstLine int
	Line      int
}

func (e *DuplicateDateError) Error() string {
	return fmt.Sprintf("line %d: duplicate date %s (first seen on line %d)", e.Line, e.Date.Format(DefaultDateFormat), e.FirstLine)
}

// AnnotationError reports an annotation that cannot be placed.
type AnnotationError struct {
	Label  string
	Reason string
}

func (e *AnnotationError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("invalid annotation: %s", e.Reason)
	}
	return fmt.Sprintf("invalid annotation %q: %s", e.Label, e.Reason)
}
