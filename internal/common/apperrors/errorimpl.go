package apperrors

import (
	"errors"
	"strings"
)

type appError struct {
	msg      string
	base     error   // parent for errors.Is / errors.As
	causes   []error // additional wrapped errors
	exitCode int
	path     string
}

// Error returns the message, prefixed by the path when one is recorded.
func (e *appError) Error() string {
	if e.path == "" {
		return e.msg
	}
	return e.path + ": " + e.msg
}

// Detail returns the message followed by the messages of every wrapped error
// that is not the parent itself.
func (e *appError) Detail() string {
	var b strings.Builder
	b.WriteString(e.Error())
	for _, err := range e.causes {
		if err == e.base {
			continue
		}
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) Causes() []error {
	return e.causes
}

func (e *appError) derive(msg string, errs []error) *appError {
	return &appError{
		msg:      msg,
		base:     e,
		causes:   append([]error{e}, errs...),
		exitCode: e.exitCode,
		path:     e.path,
	}
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:      msg,
		base:     e,
		exitCode: e.exitCode,
	}
}

func (e *appError) Msg(msg string) Error {
	return e.derive(msg, e.causes)
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return e.derive(msg, errs)
}

func (e *appError) Err(errs ...error) Error {
	return e.derive(e.msg, errs)
}

// At derives an error that keeps the message and records path.
func (e *appError) At(path string) Error {
	return &appError{
		msg:      e.msg,
		base:     e,
		causes:   e.causes,
		exitCode: e.exitCode,
		path:     path,
	}
}

func (e *appError) Path() string {
	return e.path
}

func (e *appError) SetExitCode(code int) Error {
	cp := *e
	cp.exitCode = code
	return &cp
}

func (e *appError) ExitCode() int {
	return e.exitCode
}

// Is matches target against the parent chain and every wrapped error.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.causes {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// New creates a root error. Its exit code defaults to ExitFailure.
func New(msg string) Error {
	return &appError{
		msg:      msg,
		exitCode: ExitFailure,
	}
}

// ExitCode returns the exit code of the first Error in err's chain, ExitOK
// for a nil err and ExitFailure for errors from elsewhere.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ae Error
	if errors.As(err, &ae) {
		return ae.ExitCode()
	}
	return ExitFailure
}

// Detail returns the expanded message of the first Error in err's chain, or
// err.Error() when there is none.
func Detail(err error) string {
	var ae Error
	if errors.As(err, &ae) {
		return ae.Detail()
	}
	return err.Error()
}
