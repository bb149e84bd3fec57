package beamfile

import (
	"errors"
	"fmt"
)

// ErrMalformedBeamFile is wrapped by every error raised while tokenizing or
// assembling a beam file.
var ErrMalformedBeamFile = errors.New("malformed beam file")

// LineError reports a problem on a specific line of a beam file.
type LineError struct {
	Line   int    // 1-based line number in the source
	Field  int    // 1-based field index, 0 when the whole line is at fault
	Reason string // human readable description
	Err    error  // underlying cause, may be nil
}

func (e *LineError) Error() string {
	msg := fmt.Sprintf("line %d", e.Line)
	if e.Field > 0 {
		msg += fmt.Sprintf(", field %d", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrMalformedBeamFile and the underlying cause.
func (e *LineError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedBeamFile}
	}
	return []error{ErrMalformedBeamFile, e.Err}
}

func lineErr(line, field int, err error, format string, args ...interface{}) error {
	return &LineError{Line: line, Field: field, Reason: fmt.Sprintf(format, args...), Err: err}
}
