package books

import (
	"fmt"
	"strings"
)

// Field names a draft field. Values match the JSON keys.
type Field string

const (
	FieldTitle         Field = "title"
	FieldAuthor        Field = "author"
	FieldPublishedYear Field = "published_year"
)

// Fields lists every draft field in display order
var Fields = []Field{FieldTitle, FieldAuthor, FieldPublishedYear}

// Reason categorizes a validation failure
type Reason string

const (
	ReasonRequired   Reason = "required"
	ReasonOutOfRange Reason = "out_of_range"
)

// ValidationError is a single per-field failure
type ValidationError struct {
	Field  Field  `json:"field"`
	Reason Reason `json:"reason"`
}

func (e ValidationError) Error() string {
	switch e.Reason {
	case ReasonRequired:
		switch e.Field {
		case FieldTitle:
			return "title is required"
		case FieldAuthor:
			return "author is required"
		}
	case ReasonOutOfRange:
		if e.Field == FieldPublishedYear {
			return fmt.Sprintf("published year must be between %d and %d", MinPublishedYear, MaxPublishedYear)
		}
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing field of a draft
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the failure for f, if any
func (v ValidationErrors) ByField(f Field) (ValidationError, bool) {
	for _, e := range v {
		if e.Field == f {
			return e, true
		}
	}
	return ValidationError{}, false
}

// Validate checks every field independently so that all failures surface at once.
// It returns nil for a valid draft.
func (d Draft) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, ValidationError{Field: FieldTitle, Reason: ReasonRequired})
	}
	if strings.TrimSpace(d.Author) == "" {
		errs = append(errs, ValidationError{Field: FieldAuthor, Reason: ReasonRequired})
	}
	if d.PublishedYear < MinPublishedYear || d.PublishedYear > MaxPublishedYear {
		errs = append(errs, ValidationError{Field: FieldPublishedYear, Reason: ReasonOutOfRange})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
