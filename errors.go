// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import (
	"errors"
	"fmt"
)

// Harness usage errors.  They are returned to the caller since they
// point at a mistake in setting up tests rather than at a test outcome.
var (
	// ErrInvalidTarget is returned for a nil target or a nil pointer.
	ErrInvalidTarget = errors.New("tunit: invalid target")

	// ErrInvalidMethod is returned if a requested method doesn't exist
	// on a target or is not of test shape, i.e. takes arguments or
	// returns something else than nothing or an error.
	ErrInvalidMethod = errors.New("tunit: invalid test method")

	// ErrDiscovery is returned if a target's type can't be inspected
	// for tests, e.g. because it has no name or its source can't be
	// parsed.
	ErrDiscovery = errors.New("tunit: discovery")

	// ErrRunning is returned by Run if the test is already running.
	ErrRunning = errors.New("tunit: test is running")
)

// ErrExecution is matched by every ExecutionFailure, i.e.
//
//	errors.Is(test.Err(), ErrExecution)
//
// is true after a failed run.
var ErrExecution = errors.New("tunit: execution failure")

// ExecutionFailure describes why a test's method failed.  Either Panic
// holds the value the method panicked with, Err holds the error it
// returned or Goexit is set if it called runtime.Goexit.  A panic with
// an error value sets both Panic and Err.
type ExecutionFailure struct {
	Panic  interface{}
	Err    error
	Goexit bool
}

func (f *ExecutionFailure) Error() string {
	switch {
	case f.Goexit:
		return "test method called runtime.Goexit"
	case f.Panic != nil && f.Err != nil:
		return "panic: " + f.Err.Error()
	case f.Panic != nil:
		return fmt.Sprintf("panic: %v", f.Panic)
	case f.Err != nil:
		return f.Err.Error()
	}
	return ErrExecution.Error()
}

// Unwrap returns the error the failure was created from, if any.
func (f *ExecutionFailure) Unwrap() error { return f.Err }

// Is reports ErrExecution as matching.
func (f *ExecutionFailure) Is(target error) bool {
	return target == ErrExecution
}

// newPanicFailure wraps a recovered panic value.
func newPanicFailure(r interface{}) *ExecutionFailure {
	f := &ExecutionFailure{Panic: r}
	if err, ok := r.(error); ok {
		f.Err = err
	}
	return f
}
