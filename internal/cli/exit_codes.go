package cli

import "fmt"

// Exit codes for the schemascan CLI. These support programmatic composition
// and CI integration: validate exits non-zero on error-status reports.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0
	// ExitValidationFailed indicates the validation report carries errors
	ExitValidationFailed = 1
	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2
	// ExitScanFailed indicates the scan could not complete
	ExitScanFailed = 3
)

// ExitError carries an exit code through cobra's error return.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode returns the exit code from an error (0 for nil, 1 for plain
// errors).
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ee, ok := err.(*ExitError); ok {
		return ee.Code
	}
	return 1
}
