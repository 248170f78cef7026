// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tunit_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/slukits/tunit"
	"github.com/slukits/tunit/testdata/fx"
)

type config struct{ suite.Suite }

func (s *config) Test_parses_prefix_and_order() {
	cfg, err := tunit.ParseConfig(strings.NewReader(
		"prefix: Should\norder: source\n"))
	s.Require().NoError(err)
	s.Equal(tunit.Config{Prefix: "Should", Order: "source"}, cfg)
}

func (s *config) Test_parses_an_empty_document_to_zero_config() {
	cfg, err := tunit.ParseConfig(strings.NewReader(""))
	s.Require().NoError(err)
	s.Equal(tunit.Config{}, cfg)
}

func (s *config) Test_rejects_unknown_fields() {
	_, err := tunit.ParseConfig(strings.NewReader("parallel: true\n"))
	s.ErrorIs(err, tunit.ErrConfig)
}

func (s *config) Test_rejects_an_unexported_prefix() {
	_, err := tunit.ParseConfig(strings.NewReader("prefix: test\n"))
	s.ErrorIs(err, tunit.ErrConfig)
}

func (s *config) Test_rejects_an_unknown_order() {
	_, err := tunit.ParseConfig(strings.NewReader("order: random\n"))
	s.ErrorIs(err, tunit.ErrConfig)
}

func (s *config) Test_loads_a_config_file() {
	path := filepath.Join(s.T().TempDir(), "tunit.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("prefix: Should\n"), 0o600))
	cfg, err := tunit.LoadConfig(path)
	s.Require().NoError(err)
	s.Equal("Should", cfg.Prefix)
}

func (s *config) Test_fails_loading_a_missing_file() {
	_, err := tunit.LoadConfig(filepath.Join(s.T().TempDir(), "none"))
	s.ErrorIs(err, tunit.ErrConfig)
}

func (s *config) Test_configures_a_loader() {
	l, err := tunit.NewLoader(tunit.Config{Prefix: "Should"})
	s.Require().NoError(err)
	s.Equal(tunit.OrderReflection, l.Order)
	tt, err := l.Load(&fx.Prefixed{})
	s.Require().NoError(err)
	s.Equal([]string{"Should_pass"}, names(tt))

	l, err = tunit.NewLoader(tunit.Config{Order: "source"})
	s.Require().NoError(err)
	s.Equal(tunit.OrderSource, l.Order)
	s.Empty(l.Prefix)
}

func (s *config) Test_rejects_configuring_a_loader_with_invalid_config() {
	_, err := tunit.NewLoader(tunit.Config{Order: "random"})
	s.ErrorIs(err, tunit.ErrConfig)
}

func TestConfig(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(config))
}
