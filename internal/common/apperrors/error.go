// Package apperrors provides chainable errors that carry a process exit code
// and, optionally, the document path or column they concern. Errors derived
// from one another stay matchable with errors.Is, so packages can declare a
// small set of sentinels and attach detail at the failure site.
package apperrors

// Exit codes reported by the command line tool.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitInvalidInput = 3
	ExitUnavailable  = 4
)

// Error extends the standard error interface with chaining helpers. All
// methods that return Error leave the receiver unchanged.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // new error derived from the current one
	Msg(msg string) Error                  // new message, wraps the current error
	MsgErr(msg string, err ...error) Error // new message, wraps the current error and err
	Err(err ...error) Error                // same message, wraps err
	At(path string) Error                  // records the path or column the error concerns
	Path() string                          // the recorded path, if any
	SetExitCode(int) Error                 // sets the process exit code
	ExitCode() int                         // returns the exit code
	Detail() string                        // message followed by every wrapped error
	Causes() []error                       // wrapped errors in the order they were added
}
