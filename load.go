// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/exp/slices"
)

// DefaultPrefix is the prefix a method's name must have to be loaded
// as test unless a Loader specifies an other one.  Go's reflection
// sees only exported methods hence the prefix is capitalized.
const DefaultPrefix = "Test"

// Order determines the order of the tests a Loader returns.
type Order int

const (
	// OrderReflection orders tests as reflect.Type.Method enumerates
	// them, i.e. lexicographically by name.
	OrderReflection Order = iota

	// OrderSource orders tests by the appearance of their method
	// declarations in a source file.  Tests whose methods are not
	// declared in that file, e.g. promoted methods of embedded types,
	// follow in reflection order.
	OrderSource
)

func (o Order) String() string {
	switch o {
	case OrderReflection:
		return "reflection"
	case OrderSource:
		return "source"
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// Loader discovers the tests of a target.  Its zero value loads in
// reflection order all methods whose names start with DefaultPrefix.
// A Loader is not modified by loading and may be used concurrently.
type Loader struct {

	// Prefix of test method names defaulting to DefaultPrefix.
	Prefix string

	// Order of loaded tests.
	Order Order

	// SourceFile is parsed for method declarations in case of
	// OrderSource.  It defaults to the file of the function calling
	// Load.
	SourceFile string

	// Delegate is set as delegate of each loaded test.
	Delegate Delegate

	// Logger is set as logger of each loaded test.
	Logger *slog.Logger
}

// Load returns in reflection order a not started test for each method
// of given target whose name starts with DefaultPrefix and is longer
// than it and which takes no arguments and returns nothing or an
// error.  Methods promoted from embedded types are included.  Load
// fails with ErrInvalidTarget for nil targets and with ErrDiscovery
// for targets of unnamed types.  A target without tests is no error.
func Load(target interface{}) ([]*Test, error) {
	return (&Loader{}).load(target, 2)
}

// Load returns the tests of given target as configured by l, see
// package level Load.
func (l *Loader) Load(target interface{}) ([]*Test, error) {
	return l.load(target, 2)
}

// Matches reports if given method name qualifies as test name for
// given prefix: it must start with prefix (case-sensitive) and be
// longer than it.
func Matches(prefix, name string) bool {
	return len(name) > len(prefix) && strings.HasPrefix(name, prefix)
}

func (l *Loader) prefix() string {
	if l.Prefix == "" {
		return DefaultPrefix
	}
	return l.Prefix
}

// load is the implementation of the exported loading functions whereas
// skip is passed to runtime.Caller to find the source file of the
// exported function's caller.
func (l *Loader) load(target interface{}, skip int) ([]*Test, error) {
	vl, owner, err := inspect(target)
	if err != nil {
		return nil, err
	}

	prefix, typ, tt := l.prefix(), vl.Type(), []*Test{}
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		if !Matches(prefix, m.Name) || !isTestShape(m) {
			continue
		}
		t := newTest(target, owner, m.Name, caller(vl.Method(i)),
			m.Func.Pointer())
		t.delegate, t.logger = l.Delegate, l.Logger
		tt = append(tt, t)
	}
	if l.Order != OrderSource {
		return tt, nil
	}

	file := l.SourceFile
	if file == "" {
		_, f, _, ok := runtime.Caller(skip)
		if !ok {
			return nil, fmt.Errorf(
				"%w: %s: can't determine source file", ErrDiscovery, owner)
		}
		file = f
	}
	idx, err := indexer.get(file, owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDiscovery, owner, err)
	}
	slices.SortStableFunc(tt, func(a, b *Test) bool {
		ia, okA := idx[a.method]
		ib, okB := idx[b.method]
		if okA && okB {
			return ia < ib
		}
		return okA
	})
	return tt, nil
}
