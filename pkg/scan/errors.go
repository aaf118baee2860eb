package scan

import (
	"errors"
	"fmt"
)

var (
	// ErrScannerUnavailable is returned when retire.js cannot be run.
	ErrScannerUnavailable = errors.New("retire.js is not available")

	// ErrVaultPathRequired is returned when --vault-path was not given.
	ErrVaultPathRequired = errors.New("the vault path is required")
)

// ExitCodeError asks the caller to exit with Code because vulnerabilities were found.
type ExitCodeError struct {
	Code     int
	Findings int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("%d vulnerabilities found", e.Findings)
}
