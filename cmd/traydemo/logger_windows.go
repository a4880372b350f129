// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package main

import (
	"fmt"
	"os"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-kit/kit/log"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/go-logr/zerologr"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a logr.Logger writing to stderr through backend, with
// V(v) and lower enabled. flush must run before exit.
func newLogger(backend string, v int) (logger logr.Logger, flush func(), err error) {
	switch backend {
	case "zap":
		cfg := zap.NewDevelopmentConfig()
		// V(n) is zap level -n.
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-v))
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zl, err := cfg.Build()
		if err != nil {
			return logr.Discard(), nil, err
		}
		return zapr.NewLogger(zl), func() { zl.Sync() }, nil

	case "zerolog":
		// V(n) is zerolog level 1-n.
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.Level(1 - v)).
			With().Timestamp().Logger()
		return zerologr.New(&zl), func() {}, nil

	case "logrus":
		l := logrus.New()
		l.SetOutput(os.Stderr)
		// V(1) is Debug, V(2) and above Trace.
		l.SetLevel(min(logrus.InfoLevel+logrus.Level(max(v, 0)), logrus.TraceLevel))
		return logrusr.New(l), func() {}, nil

	case "gokit":
		kl := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		kl = log.With(kl, "ts", log.DefaultTimestampUTC)
		return newGokitLogger(kl, v), func() {}, nil
	}
	return logr.Discard(), nil, fmt.Errorf("traydemo: unknown log backend %q", backend)
}
