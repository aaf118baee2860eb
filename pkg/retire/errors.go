package retire

import "errors"

var (
	// ErrMalformedOutput is returned when retire.js printed something that is not JSON.
	ErrMalformedOutput = errors.New("failed to parse retire.js output")

	// ErrScanTimedOut is returned when a retire.js invocation exceeded its timeout.
	ErrScanTimedOut = errors.New("retire.js scan timed out")
)
