package exitcode

import (
	"os"
	"strings"

	rentlyerrors "github.com/rently-vn/rently/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication or authorization failure
	AuthError = 3

	// NetworkError indicates a network connectivity issue
	NetworkError = 4

	// ConfigError indicates a configuration problem
	ConfigError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode maps an error onto an exit code using its error code
// prefix, falling back to GeneralError for plain errors.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	code := string(rentlyerrors.Code(err))
	switch {
	case strings.HasPrefix(code, "AUTH-"):
		return AuthError
	case strings.HasPrefix(code, "NET-"):
		return NetworkError
	case strings.HasPrefix(code, "IO-"):
		return ConfigError
	}
	return GeneralError
}
