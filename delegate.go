// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import "time"

// Unit is what a delegate gets to see of a test.  *Test implements
// Unit; an aggregating unit implementing it may pass itself as the
// test and one of its children as source of an update.
type Unit interface {
	Run() error
	Identifier() string
	Name() string
	Interval() time.Duration
	Status() Status
	Stats() Stats
	BackTrace() string
}

// Delegate is notified about the life cycle of a test run.  For each
// run of a test the notifications are exactly
//
//	TestWillStart, TestUpdated, TestDidFinish
//
// in this order.  TestWillStart completes before the test's method is
// invoked.  TestUpdated is sent after interval and stats are final; a
// single test is its own source.  All notifications are sent
// synchronously on the goroutine which called Run, i.e. a blocking
// delegate blocks the run.
type Delegate interface {
	TestWillStart(test Unit)
	TestUpdated(test, source Unit)
	TestDidFinish(test Unit)
}

// DelegateFuncs implements Delegate by calling its non-nil fields:
//
//	tt, _ := tunit.Load(&MyTarget{})
//	tt[0].SetDelegate(&tunit.DelegateFuncs{
//	    DidFinish: func(u tunit.Unit) { fmt.Println(u.Stats()) },
//	})
type DelegateFuncs struct {
	WillStart func(Unit)
	Updated   func(test, source Unit)
	DidFinish func(Unit)
}

func (d *DelegateFuncs) TestWillStart(test Unit) {
	if d.WillStart != nil {
		d.WillStart(test)
	}
}

func (d *DelegateFuncs) TestUpdated(test, source Unit) {
	if d.Updated != nil {
		d.Updated(test, source)
	}
}

func (d *DelegateFuncs) TestDidFinish(test Unit) {
	if d.DidFinish != nil {
		d.DidFinish(test)
	}
}

// MultiDelegate forwards each notification to its delegates in order;
// nil delegates are skipped.
type MultiDelegate []Delegate

func (m MultiDelegate) TestWillStart(test Unit) {
	for _, d := range m {
		if d != nil {
			d.TestWillStart(test)
		}
	}
}

func (m MultiDelegate) TestUpdated(test, source Unit) {
	for _, d := range m {
		if d != nil {
			d.TestUpdated(test, source)
		}
	}
}

func (m MultiDelegate) TestDidFinish(test Unit) {
	for _, d := range m {
		if d != nil {
			d.TestDidFinish(test)
		}
	}
}
