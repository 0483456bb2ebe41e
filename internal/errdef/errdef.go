package errdef

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"syscall"
)

type Code string

const (
	CodeUnknown      Code = "unknown"
	CodePermission   Code = "permission"
	CodeInvalidPath  Code = "invalid-path"
	CodePathNotFound Code = "path-not-found"
	CodeFilesystem   Code = "filesystem"
	CodeConfig       Code = "config"
	CodeUsage        Code = "usage"
	CodeInstall      Code = "install"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return ""
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Wrap annotates an existing error with an error code and optional
// message, returning nil when the original error is nil.
func Wrap(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := ""
	if format != "" {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: ensureCode(code), Message: msg, Err: err}
}

// New creates a formatted error with the supplied code.
func New(code Code, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Code: ensureCode(code), Message: msg}
}

// Classify wraps a raw filesystem error with the code matching its cause.
// Errors that already carry a code are returned unchanged.
func Classify(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var e *Error
	if stdErrors.As(err, &e) {
		return err
	}
	return Wrap(FSCode(err), err, format, args...)
}

// FSCode maps an OS-level error onto the scaffolder taxonomy.
func FSCode(err error) Code {
	switch {
	case err == nil:
		return CodeUnknown
	case stdErrors.Is(err, fs.ErrPermission):
		return CodePermission
	case stdErrors.Is(err, syscall.ENOTDIR),
		stdErrors.Is(err, syscall.EISDIR),
		stdErrors.Is(err, fs.ErrExist):
		return CodeInvalidPath
	case stdErrors.Is(err, fs.ErrNotExist):
		return CodePathNotFound
	default:
		return CodeFilesystem
	}
}

// CodeOf extracts an error code from the wrapped error value.
func CodeOf(err error) Code {
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Is reports whether the supplied error carries the target error code.
func Is(err error, code Code) bool {
	if err == nil {
		return false
	}
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// ExitCode maps an error onto a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case Is(err, CodeUsage):
		return 2
	default:
		return 1
	}
}

func ensureCode(code Code) Code {
	if code == "" {
		return CodeUnknown
	}
	return code
}
