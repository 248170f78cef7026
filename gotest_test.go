// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slukits/tunit"
)

// NOTE the bridged target is run by the Run function using a sub-test
// of the tests' testing.T instance.  This has the consequence that go
// test -v not only reports the tests of this file but also the
// sub-tests of bridged.  Since a failing bridged test would fail the
// test running it only passing targets are run here.

type bridged struct{ logs []string }

func (b *bridged) TestZulu() { b.logs = append(b.logs, "TestZulu") }

func (b *bridged) TestAlpha() error {
	b.logs = append(b.logs, "TestAlpha")
	return nil
}

func (b *bridged) Helper() { b.logs = append(b.logs, "Helper") }

func TestRunRunsTargetTestsAsSubTestsInDeclarationOrder(t *testing.T) {
	t.Parallel()
	target := &bridged{}
	if !t.Run("bridged", func(t *testing.T) { tunit.Run(target, t) }) {
		t.Fatal("expected bridged tests to pass")
	}
	assert.Equal(t, []string{"TestZulu", "TestAlpha"}, target.logs)
}

func TestRunNotifiesGivenDelegates(t *testing.T) {
	t.Parallel()
	target, r1, r2 := &bridged{}, &recorder{}, &recorder{}
	if !t.Run("bridged", func(t *testing.T) {
		tunit.Run(target, t, r1, r2)
	}) {
		t.Fatal("expected bridged tests to pass")
	}
	exp := []string{
		"will start", "updated", "did finish",
		"will start", "updated", "did finish",
	}
	assert.Equal(t, exp, r1.events)
	assert.Equal(t, exp, r2.events)
}
