// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import "fmt"

// Status is the position of a test in its life cycle.  A status only
// moves forward: NotStarted, Running, Finished.  A re-run of a finished
// test passes through Running again.
type Status int32

const (
	// NotStarted is the status of a test which was never run.
	NotStarted Status = iota
	// Running is the status of a test while its method executes.
	Running
	// Finished is the status of a test whose last run completed,
	// regardless of its outcome.
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// Stats summarizes the outcome of a test.  For a single test Tests is
// always 1, Runs is 1 once it has been run (it is not a tally of
// re-runs) and Failures is 1 iff the last run failed.  Stats are
// handed out by value, i.e. a snapshot which can't alter the test it
// was obtained from.
type Stats struct {
	Runs     int
	Tests    int
	Failures int
}

// String formats stats as "<runs>/<tests>/<failures>", e.g. "1/1/0".
// Log and report parsers depend on this exact format.
func (s Stats) String() string {
	return fmt.Sprintf("%d/%d/%d", s.Runs, s.Tests, s.Failures)
}

// Passed is true if stats report at least one run without failures.
func (s Stats) Passed() bool { return s.Runs > 0 && s.Failures == 0 }
