// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"fmt"
	"strings"
)

// Status is a request status code.
type Status uint64

const (
	// OK means the request completed successfully.
	OK Status = 200

	// BadRequest means the request was malformed.
	BadRequest Status = 400

	// NotFound means a record could not be found.
	NotFound Status = 404

	// NotAllowed means the requested action could not be performed.
	NotAllowed Status = 405

	// WrongType means the record is not the expected type.
	WrongType Status = 406

	// Conflict means the request failed due to a conflict.
	Conflict Status = 409

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 420

	// UnknownError means an unknown error occurred.
	UnknownError Status = 500

	// InternalError means an internal error occurred.
	InternalError Status = 501

	// NotReady means the receiver is not ready to satisfy the request.
	NotReady Status = 503
)

var statusNames = map[Status]string{
	OK:            "ok",
	BadRequest:    "badRequest",
	NotFound:      "notFound",
	NotAllowed:    "notAllowed",
	WrongType:     "wrongType",
	Conflict:      "conflict",
	EncodingError: "encodingError",
	UnknownError:  "unknownError",
	InternalError: "internalError",
	NotReady:      "notReady",
}

// String returns the name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status:%d", uint64(s))
}

// StatusByName returns the status with the given name.
func StatusByName(name string) (Status, bool) {
	for s, n := range statusNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return 0, false
}

// Error is an error with a status code, an optional cause, and optionally
// the call sites where it was created or wrapped.
type Error struct {
	Message   string
	Code      Status
	Cause     *Error
	CallStack []*CallSite
}

// CallSite is a location in the source.
type CallSite struct {
	FuncName string
	File     string
	Line     int64
}

// trackLocation enables call site tracking. It is off by default since
// runtime.Caller is not free.
var trackLocation = false

// EnableLocationTracking records call sites for every error created from here
// on.
func EnableLocationTracking() { trackLocation = true }

// DisableLocationTracking stops recording call sites.
func DisableLocationTracking() { trackLocation = false }
