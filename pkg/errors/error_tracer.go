package errors

import "github.com/pkg/errors"

// ErrorTracer wraps an underlying error with a message and a stack trace,
// captured at the point of Wrap/TracerFromError.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates a new ErrorTracer with the given message and no
// wrapped error yet; call Wrap to attach one.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{Message: message}
}

// TracerFromError wraps an existing error, capturing a stack trace if it
// doesn't already carry one.
func TracerFromError(err error) *ErrorTracer {
	tracer := NewTracer(err.Error())
	return tracer.Wrap(err)
}

// StackTracer is implemented by errors carrying a captured stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap attaches err as the underlying cause, capturing a stack trace if
// err doesn't already carry one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace returns the underlying error's stack trace, if any.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if tracer, ok := e.Unwrap().(StackTracer); ok {
		return tracer.StackTrace()
	}
	return nil
}
