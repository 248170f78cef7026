// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports test runs as prometheus metrics through a
// tunit.Delegate.
package metrics

import (
	"errors"
	"fmt"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/slukits/tunit"
)

// Options controls collector configuration.
type Options struct {
	// Namespace of the collectors defaulting to "tunit".
	Namespace string

	// DurationBuckets defaulting to prometheus.DefBuckets.
	DurationBuckets []float64
}

// Exporter is a delegate counting started and finished tests and
// observing their intervals.  Metrics are labeled with the type part
// of a test's identifier as "target".
type Exporter struct {
	started  *prom.CounterVec
	finished *prom.CounterVec
	duration *prom.HistogramVec
}

var _ tunit.Delegate = (*Exporter)(nil)

// New creates and registers an exporter's collectors at given
// registerer which defaults to prometheus.DefaultRegisterer.
// Collectors which are already registered are reused.
func New(reg prom.Registerer, opts Options) (*Exporter, error) {
	ns := opts.Namespace
	if ns == "" {
		ns = "tunit"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	buckets := opts.DurationBuckets
	if len(buckets) == 0 {
		buckets = prom.DefBuckets
	}

	started := prom.NewCounterVec(prom.CounterOpts{
		Namespace: ns,
		Name:      "tests_started_total",
		Help:      "Total number of started test runs.",
	}, []string{"target"})
	finished := prom.NewCounterVec(prom.CounterOpts{
		Namespace: ns,
		Name:      "tests_finished_total",
		Help:      "Total number of finished test runs by result.",
	}, []string{"target", "result"})
	duration := prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: ns,
		Name:      "test_duration_seconds",
		Help:      "Duration of test runs in seconds.",
		Buckets:   buckets,
	}, []string{"target"})

	var err error
	if started, err = register(reg, started); err != nil {
		return nil, err
	}
	if finished, err = register(reg, finished); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	return &Exporter{
		started:  started,
		finished: finished,
		duration: duration,
	}, nil
}

func (e *Exporter) TestWillStart(test tunit.Unit) {
	if e == nil {
		return
	}
	e.started.WithLabelValues(Target(test)).Inc()
}

// TestUpdated is a no-op; finished runs are recorded by TestDidFinish.
func (e *Exporter) TestUpdated(test, source tunit.Unit) {}

func (e *Exporter) TestDidFinish(test tunit.Unit) {
	if e == nil {
		return
	}
	target := Target(test)
	e.finished.WithLabelValues(target, Result(test)).Inc()
	e.duration.WithLabelValues(target).Observe(test.Interval().Seconds())
}

// Target returns the type part of given test's identifier or
// "unknown".
func Target(test tunit.Unit) string {
	id, _, _ := strings.Cut(test.Identifier(), "/")
	if id == "" {
		return "unknown"
	}
	return id
}

// Result is "passed" or "failed" for a finished test and "unknown"
// otherwise.
func Result(test tunit.Unit) string {
	if test.Status() != tunit.Finished {
		return "unknown"
	}
	if test.Stats().Failures > 0 {
		return "failed"
	}
	return "passed"
}

func register[T prom.Collector](reg prom.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prom.AlreadyRegisteredError
	if errors.As(err, &are) {
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			return c, fmt.Errorf("collector type mismatch for %T", c)
		}
		return existing, nil
	}
	return c, err
}
