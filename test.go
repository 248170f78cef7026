// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import (
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Test is the smallest executable test: a method of a target object
// which is run by Run.  After a run a test's Status, Failed, Err,
// BackTrace, Interval and Stats tell its complete outcome, i.e. a
// failing method doesn't make Run fail:
//
//	type MyTarget struct{}
//
//	func (t *MyTarget) TestSomething() { panic("boom") }
//
//	test, _ := tunit.New(&MyTarget{}, "TestSomething")
//	test.Run()
//	test.Failed()    // true
//	test.Stats()     // 1/1/1
//	test.BackTrace() // stack of the panic including TestSomething
//
// A Test must not be run concurrently with itself; an overlapping Run
// returns ErrRunning.  A finished test may be run again in which case
// its outcome reflects only the latest run.
type Test struct {
	target interface{}
	owner  string
	method string
	call   func() error
	site   string

	delegate Delegate
	logger   *slog.Logger

	status    atomic.Int32
	interval  time.Duration
	err       error
	backTrace string
	stats     Stats
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// New returns a not started test for given target's method.  New
// fails with ErrInvalidTarget for a nil target, with ErrDiscovery for
// a target whose type has no name and with ErrInvalidMethod if the
// target has no exported method of given name taking no arguments and
// returning nothing or an error.
func New(target interface{}, method string) (*Test, error) {
	vl, owner, err := inspect(target)
	if err != nil {
		return nil, err
	}
	m, ok := vl.Type().MethodByName(method)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no method %s",
			ErrInvalidMethod, owner, method)
	}
	if !isTestShape(m) {
		return nil, fmt.Errorf("%w: %s.%s: want func() or func() error",
			ErrInvalidMethod, owner, method)
	}
	return newTest(target, owner, method,
		caller(vl.Method(m.Index)), m.Func.Pointer()), nil
}

// Recorded returns a finished test for given target's method carrying
// given outcome instead of running it; a non-nil err makes it a
// failed test whose back trace is the stack of the Recorded call.
// Recorded validates its arguments like New.  A recorded test can be
// passed to delegates by Replay and may be run like any other test.
func Recorded(
	target interface{}, method string, interval time.Duration, err error,
) (*Test, error) {
	t, e := New(target, method)
	if e != nil {
		return nil, e
	}
	var trace string
	if err != nil {
		err, trace = &ExecutionFailure{Err: err}, string(debug.Stack())
	}
	t.finish(interval, err, trace)
	return t, nil
}

func newTest(
	target interface{}, owner, method string, call func() error,
	pc uintptr,
) *Test {
	return &Test{
		target: target,
		owner:  owner,
		method: method,
		call:   call,
		site:   site(pc),
		stats:  Stats{Tests: 1},
	}
}

// site formats the function at given program counter like a frame of
// a stack trace: its name followed by its declaring file and line.
func site(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	file, line := fn.FileLine(fn.Entry())
	return fmt.Sprintf("%s()\n\t%s:%d", fn.Name(), file, line)
}

// inspect validates given target and returns its reflection value and
// the name of its (pointed to) type.
func inspect(target interface{}) (reflect.Value, string, error) {
	if target == nil {
		return reflect.Value{}, "", ErrInvalidTarget
	}
	vl := reflect.ValueOf(target)
	typ := vl.Type()
	switch vl.Kind() {
	case reflect.Ptr:
		if vl.IsNil() {
			return reflect.Value{}, "", fmt.Errorf(
				"%w: nil %s", ErrInvalidTarget, typ)
		}
		typ = typ.Elem()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Slice:
		if vl.IsNil() {
			return reflect.Value{}, "", fmt.Errorf(
				"%w: nil %s", ErrInvalidTarget, typ)
		}
	}
	if typ.Name() == "" {
		return reflect.Value{}, "", fmt.Errorf(
			"%w: unnamed type %s", ErrDiscovery, vl.Type())
	}
	return vl, typ.Name(), nil
}

// isTestShape reports if given method, obtained from a reflect.Type,
// takes no arguments besides its receiver and returns nothing or an
// error.
func isTestShape(m reflect.Method) bool {
	ft := m.Type
	if ft.NumIn() != 1 {
		return false
	}
	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	}
	return false
}

// caller wraps given bound method value of test shape.
func caller(fn reflect.Value) func() error {
	return func() error {
		out := fn.Call(nil)
		if len(out) == 0 || out[0].IsNil() {
			return nil
		}
		return out[0].Interface().(error)
	}
}

// Target returns the object owning the test's method.
func (t *Test) Target() interface{} { return t.target }

// Method returns the name of the test's method.
func (t *Test) Method() string { return t.method }

// Identifier is "<type>/<method>" where type is the name of the
// target's (pointed to) type.
func (t *Test) Identifier() string { return t.owner + "/" + t.method }

// Name of a test is the name of its method.
func (t *Test) Name() string { return t.method }

// Status returns where the test is in its life cycle.
func (t *Test) Status() Status { return Status(t.status.Load()) }

// Interval is the duration of the latest completed run; zero before
// any run.
func (t *Test) Interval() time.Duration { return t.interval }

// Stats returns a snapshot of the test's stats.
func (t *Test) Stats() Stats { return t.stats }

// Failed is true iff the latest run's method panicked or returned an
// error.
func (t *Test) Failed() bool { return t.err != nil }

// Err returns the *ExecutionFailure of a failed test and nil
// otherwise.
func (t *Test) Err() error { return t.err }

// BackTrace is empty for a test which didn't fail.  For a panicking
// method it is the stack at the point of the panic.  A returned error
// has left the method's frames already, hence the back trace names the
// method which returned it followed by the stack of the run.  For a
// method calling runtime.Goexit it is the stack at the point of the
// exit.
func (t *Test) BackTrace() string { return t.backTrace }

// SetDelegate replaces the delegate notified about runs of this test.
// nil removes the delegate.
func (t *Test) SetDelegate(d Delegate) { t.delegate = d }

// SetLogger sets the logger reporting panicking delegates; it defaults
// to slog.Default().
func (t *Test) SetLogger(l *slog.Logger) { t.logger = l }

func (t *Test) String() string {
	return fmt.Sprintf("%s: %s: %s", t.Identifier(), t.Status(), t.Stats())
}

// Run executes the test's method.  A panic or returned error of the
// method fails the test but not Run, i.e. Run returns only ErrRunning
// if the test is already running.  Its delegate is notified before the
// method is invoked and twice after the outcome is recorded, see
// Delegate.  If the method calls runtime.Goexit the test is finished
// as failed and its delegate notified before the goroutine calling Run
// exits, i.e. in this case Run doesn't return.
func (t *Test) Run() error {
	for {
		s := t.status.Load()
		if Status(s) == Running {
			return fmt.Errorf("%w: %s", ErrRunning, t.Identifier())
		}
		if t.status.CompareAndSwap(s, int32(Running)) {
			break
		}
	}
	t.notify("will start", func(d Delegate) { d.TestWillStart(t) })

	start, finished := time.Now(), false
	defer func() {
		if finished {
			return
		}
		t.finish(time.Since(start), &ExecutionFailure{Goexit: true},
			string(debug.Stack()))
		t.notifyDone()
	}()
	trace, err := t.invoke()
	t.finish(time.Since(start), err, trace)
	finished = true

	t.notifyDone()
	return nil
}

// Replay notifies the delegate of a finished test's outcome as Run
// does after a run.  Replay is a no-op for a test which is not
// finished.
func (t *Test) Replay() {
	if t.Status() != Finished {
		return
	}
	t.notifyDone()
}

// notifyDone sends the notifications of a finished run.
func (t *Test) notifyDone() {
	t.notify("updated", func(d Delegate) { d.TestUpdated(t, t) })
	t.notify("did finish", func(d Delegate) { d.TestDidFinish(t) })
}

// invoke calls the test's method.  A panic's stack is taken in the
// deferred recover, i.e. while the panicking frames are still on the
// stack.  A runtime.Goexit passes invoke unrecovered.
func (t *Test) invoke() (trace string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		trace, err = string(debug.Stack()), newPanicFailure(r)
	}()
	if e := t.call(); e != nil {
		return fmt.Sprintf("error returned from %s by\n%s\n\n%s",
			t.Identifier(), t.site, debug.Stack()), &ExecutionFailure{Err: e}
	}
	return "", nil
}

// finish records the outcome of a run and sets the test finished.
func (t *Test) finish(d time.Duration, err error, trace string) {
	if d < 0 {
		d = 0
	}
	t.interval, t.err, t.backTrace = d, err, trace
	t.stats = Stats{Runs: 1, Tests: 1}
	if err != nil {
		t.stats.Failures = 1
	}
	t.status.Store(int32(Finished))
}

// notify calls n with the test's delegate if there is one.  A
// panicking delegate is logged and otherwise ignored.
func (t *Test) notify(event string, n func(Delegate)) {
	if t.delegate == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.log().Error("tunit: delegate panicked",
				"test", t.Identifier(), "event", event, "panic", r)
		}
	}()
	n(t.delegate)
}

func (t *Test) log() *slog.Logger {
	if t.logger == nil {
		return slog.Default()
	}
	return t.logger
}
