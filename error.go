// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package threadrand

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrEntropyUnavailable indicates the system entropy source was unable
	// to supply the bytes required to seed or reseed a generator.
	ErrEntropyUnavailable = ErrorKind("ErrEntropyUnavailable")

	// ErrReseedFailed indicates a threshold-triggered reseed of a generator
	// failed because entropy could not be obtained.  No output is produced
	// past the reseed threshold when this error is returned.
	ErrReseedFailed = ErrorKind("ErrReseedFailed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to random number generation.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
//
// RawErr contains the original error in the case where an error has been
// converted.
type Error struct {
	Err         error
	RawErr      error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string, rawErr error) Error {
	return Error{Err: kind, Description: desc, RawErr: rawErr}
}
