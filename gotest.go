// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import "testing"

// goT is the part of a *testing.T the go test bridge uses.
type goT interface {
	Helper()
	Fatal(args ...interface{})
	Errorf(format string, args ...interface{})
}

// goRunner runs sub-tests, i.e. it is implemented by *testing.T.
type goRunner interface {
	goT
	Run(name string, f func(*testing.T)) bool
}

// Run runs the tests of given target as sub-tests of given testing.T
// instance in the order of their declaration in the file calling Run:
//
//	type Parser struct{ /* fixtures */ }
//
//	func (p *Parser) TestEmptyInput() { ... }
//
//	func TestParser(t *testing.T) { tunit.Run(&Parser{}, t) }
//
// A failed test fails its sub-test reporting its error and back trace.
// Given delegates are notified about each test's run.  A target which
// can't be loaded fatales t.
func Run(target interface{}, t *testing.T, dd ...Delegate) {
	t.Helper()
	run(target, t, dd...)
}

// run implements Run; it must be called directly by Run to find the
// source file of Run's caller.
func run(target interface{}, t goRunner, dd ...Delegate) {
	t.Helper()
	l := &Loader{Order: OrderSource}
	switch len(dd) {
	case 0:
	case 1:
		l.Delegate = dd[0]
	default:
		l.Delegate = MultiDelegate(dd)
	}
	tt, err := l.load(target, 3)
	if err != nil {
		t.Fatal(err)
		return
	}
	for _, test := range tt {
		test := test
		t.Run(test.Name(), func(t *testing.T) { report(t, test) })
	}
}

// report runs given test and reports its failure to given testing
// instance.
func report(t goT, test *Test) {
	t.Helper()
	if err := test.Run(); err != nil {
		t.Fatal(err)
		return
	}
	if test.Failed() {
		t.Errorf("%s: %v\n%s",
			test.Identifier(), test.Err(), test.BackTrace())
	}
}
