// Copyright 2023 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"gitlab.com/accumulatenetwork/vmstate/pkg/types/encoding"
)

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the caller is at fault.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// Error implements error so a bare status can be matched with [Is].
func (s Status) Error() string { return s.String() }

// Skip returns a factory that skips n additional frames when recording the
// call site.
func (s Status) Skip(n int) Factory {
	return Factory{Skip: n, Code: s}
}

func (s Status) Wrap(err error) error {
	return s.Skip(1).Wrap(err)
}

func (s Status) With(v ...interface{}) *Error {
	return s.Skip(1).With(v...)
}

func (s Status) WithFormat(format string, args ...interface{}) *Error {
	return s.Skip(1).WithFormat(format, args...)
}

// Factory creates errors with a given code.
type Factory struct {
	Skip int
	Code Status
}

// Wrap returns nil if err is nil. Wrapping with UnknownError adds nothing, so
// an existing [Error] is returned as is unless call sites are being tracked.
func (f Factory) Wrap(err error) error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok && !trackLocation && !f.Code.IsKnownError() {
		return e
	}

	e := f.new()
	e.setCause(convert(err))
	return e
}

func (f Factory) With(v ...interface{}) *Error {
	e := f.new()
	e.Message = fmt.Sprint(v...)
	return e
}

// WithFormat formats the message like fmt.Errorf. If the format wraps an
// error with %w, that error becomes the cause.
func (f Factory) WithFormat(format string, args ...interface{}) *Error {
	err := fmt.Errorf(format, args...)
	e := f.new()
	e.Message = err.Error()
	if u := errors.Unwrap(err); u != nil {
		e.setCause(convert(u))
	}
	return e
}

func (f Factory) new() *Error {
	e := &Error{Code: f.Code}
	e.recordCallSite(3 + f.Skip)
	return e
}

// convert turns an arbitrary error into an [Error]. A status is kept, a
// binary encoding failure becomes EncodingError, anything else has no code.
func convert(err error) *Error {
	var x *Error
	if errors.As(err, &x) {
		return x
	}

	e := &Error{Message: err.Error()}
	var status Status
	var encErr encoding.Error
	switch {
	case errors.As(err, &status):
		e.Code = status
	case errors.As(err, &encErr):
		e.Code = EncodingError
	}
	return e
}

// setCause links the cause. An error without a code of its own takes the
// cause's code, and an error without a message takes the cause's place
// entirely.
func (e *Error) setCause(cause *Error) {
	e.Cause = cause
	if e.Code.IsKnownError() {
		return
	}

	if e.Message != "" {
		e.Code = cause.Code
		return
	}

	cs := e.CallStack
	*e = *cause
	e.CallStack = append(cs, cause.CallStack...)
}

func (e *Error) recordCallSite(depth int) {
	if !trackLocation {
		return
	}

	pc, file, line, ok := runtime.Caller(depth)
	if !ok {
		return
	}

	cs := &CallSite{File: file, Line: int64(line)}
	if fn := runtime.FuncForPC(pc); fn != nil {
		cs.FuncName = fn.Name()
	}
	e.CallStack = append(e.CallStack, cs)
}

func (e *Error) Error() string {
	if e.Message == "" && e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Code
}

// Is matches a status or an error with the same code anywhere in the chain.
func (e *Error) Is(target error) bool {
	var code Status
	switch f := target.(type) {
	case *Error:
		code = f.Code
	case Status:
		code = f
	default:
		return false
	}

	for ; e != nil; e = e.Cause {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Format prints the message, or with %+v each link of the chain followed by
// the call sites recorded for it.
func (e *Error) Format(f fmt.State, verb rune) {
	if !f.Flag('+') || e.CallStack == nil {
		_, _ = f.Write([]byte(e.Error()))
		return
	}

	var parts []string
	for ; e != nil; e = e.Cause {
		msg := e.Message
		if msg == "" {
			msg = e.Code.String()
		} else if e.Cause != nil {
			msg = strings.TrimSuffix(msg, e.Cause.Message)
		}

		s := new(strings.Builder)
		s.WriteString(msg)
		s.WriteString("\n")
		for _, cs := range e.CallStack {
			fmt.Fprintf(s, "%s\n    %s:%d\n", cs.FuncName, cs.File, cs.Line)
		}
		parts = append(parts, s.String())
	}
	_, _ = f.Write([]byte(strings.Join(parts, "\n")))
}
