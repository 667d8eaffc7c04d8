package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrSourceMissing = errors.New("data source missing")
	ErrMissingColumn = errors.New("required column missing")
	ErrBadValue      = errors.New("unparsable value")
)

// LoadError reports why a dataset could not be read. Load failures are fatal
// to the caller; nothing in this package retries.
type LoadError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *LoadError) Error() string {
	msg := "load dataset"
	if e.Source != "" {
		msg += " " + e.Source
	}
	switch {
	case e.Line > 0 && e.Column != "":
		msg += fmt.Sprintf(": line %d, column %q", e.Line, e.Column)
	case e.Line > 0:
		msg += fmt.Sprintf(": line %d", e.Line)
	case e.Column != "":
		msg += fmt.Sprintf(": column %q", e.Column)
	}
	return msg + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is, or wraps, a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
