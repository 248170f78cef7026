// Package tunit provides the smallest building block of a test harness:
// a Test binding one method of a target object which can be run,
// timed and inspected.  To do so tunit offers
//   - discovery of a target's test methods by their names
//   - failure transparent execution
//   - a delegate observing the life cycle of a run
//
// A test method is an exported method of a target whose name starts
// with the prefix "Test" and is longer than the prefix, takes no
// arguments and returns nothing or an error:
//
//	type Calculator struct{ /* fixtures */ }
//
//	func (c *Calculator) TestAdds() {
//	    if 1+1 != 2 {
//	        panic("expected 1+1 to be 2")
//	    }
//	}
//
//	func (c *Calculator) TestDivides() error {
//	    _, err := c.div(1, 0)
//	    return err
//	}
//
//	tt, err := tunit.Load(&Calculator{})
//
// A test fails if its method panics or returns an error.  Running a
// failing test doesn't make its Run-call fail.  Instead the test
// records the failure and the stack at the point of failure:
//
//	for _, t := range tt {
//	    t.Run()
//	    fmt.Println(t.Identifier(), t.Stats(), t.Err())
//	}
//
// prints
//
//	Calculator/TestAdds 1/1/0 <nil>
//	Calculator/TestDivides 1/1/1 division by zero
//
// Run only fails with ErrRunning if it is called on a test which is
// currently running, i.e. errors returned by tunit indicate a mistake
// in setting up tests while failing tests are outcomes.
//
// A delegate set to a test is notified before its method is invoked,
// after its outcome is recorded and when its run is done:
//
//	t.SetDelegate(&tunit.DelegateFuncs{
//	    WillStart: func(u tunit.Unit) { log.Print(u.Identifier()) },
//	})
//
// The packages logging and metrics provide delegates reporting runs to
// a slog.Logger respectively to prometheus.
//
// Tests are loaded in the order reflection enumerates methods, i.e.
// sorted by name.  A Loader may order them by their appearance in a
// source file instead which is what Run does to run a target's tests
// as sub-tests of a go test:
//
//	func TestCalculator(t *testing.T) { tunit.Run(&Calculator{}, t) }
//
// Where tests should not be identified by their names a Registry
// collects explicitly registered functions as tests.
//
// A Test is not safe for concurrent use.  Loading is.
package tunit
