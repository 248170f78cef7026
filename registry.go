// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrRegistration is returned by a Registry for a nil function, an
// empty name or a name which is already registered.
var ErrRegistration = errors.New("tunit: registration")

// Registry collects tests by explicit registration instead of
// reflection:
//
//	r := tunit.NewRegistry("parser")
//	r.Add("empty input", func() { ... })
//	r.AddE("trailing comma", func() error { ... })
//	for _, t := range r.Tests() {
//	    t.Run()
//	}
//
// Registered names are not matched against a prefix.  A Registry is
// not safe for concurrent registration.
type Registry struct {
	name  string
	names map[string]bool
	tests []*Test
}

// NewRegistry returns an empty registry whose name is the type part of
// the identifiers of its tests.
func NewRegistry(name string) *Registry {
	return &Registry{name: name, names: map[string]bool{}}
}

// Name returns the registry's name.
func (r *Registry) Name() string { return r.name }

// Add registers given function as test of given name which fails iff
// the function panics.
func (r *Registry) Add(name string, fn func()) error {
	if fn == nil {
		return fmt.Errorf("%w: %s: nil func", ErrRegistration, name)
	}
	return r.add(name, func() error { fn(); return nil },
		reflect.ValueOf(fn).Pointer())
}

// AddE registers given function as test of given name which fails iff
// the function panics or returns an error.
func (r *Registry) AddE(name string, fn func() error) error {
	if fn == nil {
		return fmt.Errorf("%w: %s: nil func", ErrRegistration, name)
	}
	return r.add(name, fn, reflect.ValueOf(fn).Pointer())
}

// add registers given test function whereas pc points to the
// registered function for back traces of returned errors.
func (r *Registry) add(name string, fn func() error, pc uintptr) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrRegistration)
	case r.names[name]:
		return fmt.Errorf("%w: %s: already registered", ErrRegistration, name)
	}
	r.names[name] = true
	r.tests = append(r.tests, newTest(r, r.name, name, fn, pc))
	return nil
}

// Tests returns the registered tests in order of registration.  The
// returned slice is a copy while the tests are shared, i.e. a test run
// through one of the returned slices is run for all.
func (r *Registry) Tests() []*Test {
	tt := make([]*Test, len(r.tests))
	copy(tt, r.tests)
	return tt
}
