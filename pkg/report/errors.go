package report

import "fmt"

// ErrorUnsupported wraps a decoding failure of scanner output.
type ErrorUnsupported struct {
	err error
}

func (e *ErrorUnsupported) Error() string {
	return fmt.Sprintf("unsupported retire.js output: %v", e.err)
}

func (e *ErrorUnsupported) Unwrap() error {
	return e.err
}
