// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-logr/logr"
)

// gokitSink is a logr.LogSink over a go-kit logger. V(0) logs at level
// info and higher verbosities at level debug.
type gokitSink struct {
	logger log.Logger
	name   string
	v      int
}

func newGokitLogger(l log.Logger, v int) logr.Logger {
	return logr.New(&gokitSink{logger: l, v: v})
}

func (s *gokitSink) Init(logr.RuntimeInfo) {}

func (s *gokitSink) Enabled(v int) bool { return v <= s.v }

func (s *gokitSink) Info(v int, msg string, keysAndValues ...any) {
	l := level.Info(s.logger)
	if v > 0 {
		l = level.Debug(s.logger)
	}
	l.Log(s.keyvals(msg, keysAndValues)...)
}

func (s *gokitSink) Error(err error, msg string, keysAndValues ...any) {
	kv := s.keyvals(msg, nil)
	kv = append(kv, "err", err)
	level.Error(s.logger).Log(append(kv, keysAndValues...)...)
}

func (s *gokitSink) keyvals(msg string, keysAndValues []any) []any {
	kv := make([]any, 0, 4+len(keysAndValues))
	if s.name != "" {
		kv = append(kv, "logger", s.name)
	}
	kv = append(kv, "msg", msg)
	return append(kv, keysAndValues...)
}

func (s *gokitSink) WithValues(keysAndValues ...any) logr.LogSink {
	c := *s
	c.logger = log.With(s.logger, keysAndValues...)
	return &c
}

func (s *gokitSink) WithName(name string) logr.LogSink {
	c := *s
	if c.name != "" {
		c.name += "/"
	}
	c.name += name
	return &c
}
