package loader

import (
	"errors"
	"fmt"
)

// Kind classifies why a load or analysis step produced no data.
type Kind int

const (
	// SourceMissing - backing directory or per-country file absent.
	SourceMissing Kind = iota + 1
	// SourceUnreadable - file present but malformed or unparseable.
	SourceUnreadable
	// SourceEmpty - file present but yielded zero usable records.
	SourceEmpty
	// FieldMissing - requested measurement field absent from the dataset.
	FieldMissing
)

func (k Kind) String() string {
	switch k {
	case SourceMissing:
		return "source missing"
	case SourceUnreadable:
		return "source unreadable"
	case SourceEmpty:
		return "source empty"
	case FieldMissing:
		return "field missing"
	}
	return "unknown"
}

// SourceError is the typed no-data result returned at the loader and
// analysis boundaries. Callers that only care about "nothing to render"
// check IsNoData; callers that want diagnostics inspect Kind.
type SourceError struct {
	Kind    Kind
	Country string
	Path    string
	Field   string
	Err     error
}

func (e *SourceError) Error() string {
	msg := e.Kind.String()
	if e.Country != "" {
		msg = fmt.Sprintf("%s: %s", e.Country, msg)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field %q)", msg, e.Field)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsNoData reports whether err is any of the no-data kinds. This is the
// single check the presentation layer needs to collapse all failure kinds
// back to "nothing to display".
func IsNoData(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// ErrKind extracts the no-data kind from err, or 0 if err is not a
// SourceError.
func ErrKind(err error) Kind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
