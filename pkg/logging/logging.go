// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package logging provides structured logging of test runs: a
// tunit.Delegate writing each life cycle event to a slog.Logger and
// helpers to pass such a logger around in a context.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/slukits/tunit"
)

type logger struct{}

// NewLogger returns a logger writing to the first given handler or,
// if none is given, json-formatted to os.Stderr.
func NewLogger(h ...slog.Handler) *slog.Logger {
	if len(h) > 0 && h[0] != nil {
		return slog.New(h[0])
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

// IntoContext embeds given logger into given context.
func IntoContext(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, logger{}, log)
}

// FromContext returns the logger embedded into given context or a new
// default logger if there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(logger{}).(*slog.Logger); ok {
			return log
		}
	}
	return NewLogger()
}

// Delegate logs the life cycle events of the tests it is delegate of.
// Start and update events are logged at debug level, finished tests at
// info level if they passed and at error level otherwise.
type Delegate struct {
	log *slog.Logger
}

var _ tunit.Delegate = (*Delegate)(nil)

// NewDelegate returns a delegate logging to given logger; a nil logger
// is replaced by slog.Default().
func NewDelegate(log *slog.Logger) *Delegate {
	if log == nil {
		log = slog.Default()
	}
	return &Delegate{log: log}
}

func (d *Delegate) TestWillStart(test tunit.Unit) {
	d.log.Debug("test will start", "test", test.Identifier())
}

func (d *Delegate) TestUpdated(test, source tunit.Unit) {
	d.log.Debug("test updated",
		"test", test.Identifier(),
		"source", source.Identifier(),
		"stats", test.Stats().String(),
	)
}

func (d *Delegate) TestDidFinish(test tunit.Unit) {
	attrs := []any{
		"test", test.Identifier(),
		"status", test.Status().String(),
		"stats", test.Stats().String(),
		"interval", test.Interval(),
	}
	if test.Stats().Failures == 0 {
		d.log.Info("test passed", attrs...)
		return
	}
	if f, ok := test.(interface{ Err() error }); ok && f.Err() != nil {
		attrs = append(attrs, "error", f.Err().Error())
	}
	attrs = append(attrs, "backtrace", test.BackTrace())
	d.log.Error("test failed", attrs...)
}
