// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides targets with test methods to test tunit's
// discovery and execution.
//
// Each target embeds the FixtureLog ensuring that the names of invoked
// test methods are appended to its *Logs*-property which then can be
// evaluated after the target's tests were run.
package fx

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// File returns the name of this source file.
func File() string {
	_, f, _, _ := runtime.Caller(0)
	return f
}

// FixtureLog collects the names of invoked test methods concurrency
// save.
type FixtureLog struct {
	mutex sync.Mutex
	Logs  []string
}

func (fl *FixtureLog) log(name string) {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	fl.Logs = append(fl.Logs, name)
}

// Logged returns a copy of the logged method names.
func (fl *FixtureLog) Logged() []string {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	return append([]string{}, fl.Logs...)
}

// Discovery has the two test methods TestAlpha and TestBeta while its
// other methods must not be discovered.
type Discovery struct{ FixtureLog }

func (d *Discovery) TestAlpha() { d.log("TestAlpha") }

func (d *Discovery) TestBeta() { d.log("TestBeta") }

func (d *Discovery) HelperMethod() { d.log("HelperMethod") }

func (d *Discovery) Test() { d.log("Test") }

// Testing matches the test prefix by name and is excluded only
// because its result is not of test shape.
func (d *Discovery) Testing() int { d.log("Testing"); return 1 }

func (d *Discovery) TestArg(n int) { d.log("TestArg") }

func (d *Discovery) TestTwo() (int, error) {
	d.log("TestTwo")
	return 0, nil
}

func (d *Discovery) testLower() { d.log("testLower") }

// Empty has no test methods.
type Empty struct{ FixtureLog }

func (e *Empty) Helper() {}

// ErrDivideByZero is returned by Calc.TestReturnsErr.
var ErrDivideByZero = errors.New("divide by zero")

// Calc has passing and failing tests.  A failing test fails either by
// a panic or by returning an error.
type Calc struct {
	FixtureLog

	// Self is run by TestRunsItself.
	Self interface{ Run() error }

	// SelfErr is the error of running Self.
	SelfErr error
}

func (c *Calc) TestPasses() { c.log("TestPasses") }

func (c *Calc) TestPassesWithNilErr() error {
	c.log("TestPassesWithNilErr")
	return nil
}

// TestBoom panics with "divide by zero" two calls deep.
func (c *Calc) TestBoom() {
	c.log("TestBoom")
	c.divide(1, 0)
}

func (c *Calc) divide(a, b int) int {
	if b == 0 {
		panic("divide by zero")
	}
	return a / b
}

func (c *Calc) TestReturnsErr() error {
	c.log("TestReturnsErr")
	return fmt.Errorf("calc: %w", ErrDivideByZero)
}

func (c *Calc) TestPanicsWithErr() {
	c.log("TestPanicsWithErr")
	panic(ErrDivideByZero)
}

func (c *Calc) TestRunsItself() {
	c.log("TestRunsItself")
	if c.Self != nil {
		c.SelfErr = c.Self.Run()
	}
}

// Toggle fails every other run starting with a failing run.
type Toggle struct {
	FixtureLog
	runs int
}

func (t *Toggle) TestToggles() {
	t.log("TestToggles")
	t.runs++
	if t.runs%2 == 1 {
		panic("odd run")
	}
}

// Base provides a test which is promoted to its embedders.
type Base struct{ FixtureLog }

func (b *Base) TestInherited() { b.log("TestInherited") }

// Embedding embeds Base.
type Embedding struct {
	Base
}

func (e *Embedding) TestOwn() { e.log("TestOwn") }

// Value declares its test with a value receiver.
type Value struct{ Logs *[]string }

func (v Value) TestValue() { *v.Logs = append(*v.Logs, "TestValue") }

// Ordered declares its tests in an order different from their
// lexicographical order.
type Ordered struct{ FixtureLog }

func (o *Ordered) TestZulu() { o.log("TestZulu") }

func (o *Ordered) TestAlpha() { o.log("TestAlpha") }

func (o *Ordered) TestMike() { o.log("TestMike") }

// Prefixed has a test with the prefix "Should".
type Prefixed struct{ FixtureLog }

func (p *Prefixed) Should_pass() { p.log("Should_pass") }

func (p *Prefixed) Should() { p.log("Should") }

func (p *Prefixed) TestIgnored() { p.log("TestIgnored") }

// Sleeper calls Sleep in its test.
type Sleeper struct {
	FixtureLog
	Sleep func()
}

func (s *Sleeper) TestSleeps() {
	s.log("TestSleeps")
	if s.Sleep != nil {
		s.Sleep()
	}
}

// Exiter's test calls runtime.Goexit as testing.T.FailNow does.
type Exiter struct{ FixtureLog }

func (e *Exiter) TestExits() {
	e.log("TestExits")
	runtime.Goexit()
}
