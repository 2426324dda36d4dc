// Package exitcode provides standardized exit codes for dedupe
package exitcode

import (
	"context"
	"errors"

	dderrors "github.com/arthur-debert/dedupe/pkg/errors"
)

// Exit codes for the dedupe CLI
const (
	Success         = 0
	GeneralError    = 1
	ConfigError     = 2
	ValidationError = 3
	FileSystemError = 4
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Invalid arguments or configuration"
	case ValidationError:
		return "Verification found mismatches"
	case FileSystemError:
		return "File system error"
	default:
		return "Unknown error"
	}
}

// ForError maps an error returned by a command to the process exit code.
func ForError(err error) int {
	if err == nil {
		return Success
	}
	if errors.Is(err, context.Canceled) {
		return GeneralError
	}
	switch dderrors.GetErrorCode(err) {
	case dderrors.ErrInvalidArgument, dderrors.ErrConfigLoad, dderrors.ErrConfigInvalid:
		return ConfigError
	case dderrors.ErrVerifyMismatch:
		return ValidationError
	case dderrors.ErrDeleteFailed:
		return FileSystemError
	default:
		return GeneralError
	}
}
