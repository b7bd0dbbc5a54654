// Package errors decorates errors with structured slog attributes and the source location where they were created.
//
// It is a drop-in replacement for the standard library errors package. Use [Wrap] instead of fmt.Errorf with %w so
// that the attributes end up in the log line produced by [SlogError].
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"strconv"
)

type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

func (e *annotatedError) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return e.msg + ": " + e.err.Error()
	}
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// callerSource resolves the file:line of the function calling the exported constructor.
func callerSource(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	if frame.File == "" {
		return ""
	}
	return frame.File + ":" + strconv.Itoa(frame.Line)
}

// NewSentinel creates a comparable error without stack information meant for package level error variables.
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // this is the sentinel constructor.
}

// New creates an error annotated with attrs and the caller's source location.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    nil,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip callerSource and New.
	}
}

// Wrap annotates err with msg, attrs and the caller's source location.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: callerSource(2), //nolint:mnd // skip callerSource and Wrap.
	}
}

// DecoratePanic converts a recovered panic value into an error pointing to the line that panicked.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	var (
		pcs    [32]uintptr
		n      = runtime.Callers(1, pcs[:])
		frames = runtime.CallersFrames(pcs[:n])
		source string
		seen   bool
	)
	for {
		frame, more := frames.Next()
		if seen {
			source = frame.File + ":" + strconv.Itoa(frame.Line)
			break
		}
		if frame.Function == "runtime.gopanic" {
			seen = true
		}
		if !more {
			break
		}
	}
	attrs := []slog.Attr{slog.String("stack", string(debug.Stack()))}
	if err, ok := excp.(error); ok {
		return &annotatedError{msg: "panic", err: err, attrs: attrs, source: source}
	}
	return &annotatedError{msg: fmt.Sprintf("panic: %v", excp), err: nil, attrs: attrs, source: source}
}

// collect walks the error tree and gathers the annotations. The source of the innermost annotated error wins.
func collect(err error, attrs []slog.Attr, source string) ([]slog.Attr, string) {
	if err == nil {
		return attrs, source
	}
	var ae *annotatedError
	if errors.As(err, &ae) {
		// errors.As might have skipped plain wrappers, continue from the annotated error.
		attrs = append(attrs, ae.attrs...)
		if ae.source != "" {
			source = ae.source
		}
		return collect(ae.err, attrs, source)
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			attrs, source = collect(e, attrs, source)
		}
	}
	return attrs, source
}

// SlogError renders err as a slog group containing the message, the annotations, and the source location.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Any("error", nil)
	}
	attrs, source := collect(err, nil, "")
	group := []any{slog.String("message", err.Error())}
	if len(attrs) > 0 {
		annotations := make([]any, 0, len(attrs))
		for _, a := range attrs {
			annotations = append(annotations, a)
		}
		group = append(group, slog.Group("annotations", annotations...))
	}
	if source != "" {
		group = append(group, slog.String("source", source))
	}
	return slog.Group("error", group...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}
