package btargs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrMalformedFrameID     = errors.New("failed to find end of frame ID")
	ErrMissingFunctionName  = errors.New("frame misses function name")
	ErrMissingInKeyword     = errors.New("frame misses in")
	ErrMalformedBinding     = errors.New("argument misses =")
	ErrMissingArgumentValue = errors.New("argument misses value")
	ErrMalformedWatchEntry  = errors.New("malformed watch entry")
)

// LineError is a recoverable parse failure tied to one input line.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the sentinel.
func (e *LineError) Cause() error {
	return errors.Cause(e.Err)
}
