// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// The traydemo command shows a notification-area icon whose tooltip names
// the computer and the user running it.
//
// Click the icon for a balloon, pick Quit from its context menu, or press
// Ctrl+C in the console.
//
// Usage: traydemo [-v level] [-log zap|zerolog|logrus|gokit] [-interval d]
// [-message-only] [-guid {...}] [-trace]
//
// Each flag defaults to the environment variable named after it, such as
// TRAYDEMO_V or TRAYDEMO_MESSAGE_ONLY. With -trace every dispatched message
// is written to stderr as a span.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"
	"unsafe"

	"github.com/caarlos0/env/v11"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sys/windows"

	"golang.org/x/exp/winsafe/dualcall"
	"golang.org/x/exp/winsafe/guard"
	"golang.org/x/exp/winsafe/internal/native"
	"golang.org/x/exp/winsafe/win32app"
)

type config struct {
	Verbosity   int           `env:"TRAYDEMO_V"`
	Log         string        `env:"TRAYDEMO_LOG" envDefault:"zap"`
	Interval    time.Duration `env:"TRAYDEMO_INTERVAL"`
	MessageOnly bool          `env:"TRAYDEMO_MESSAGE_ONLY"`
	GUID        string        `env:"TRAYDEMO_GUID"`
	Trace       bool          `env:"TRAYDEMO_TRACE"`
}

// Context menu items.
const (
	cmdBalloon = 1 + iota
	cmdQuit
)

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		log.Fatal(err)
	}
	flag.IntVar(&cfg.Verbosity, "v", cfg.Verbosity, "log verbosity; 1 logs window and icon lifecycle")
	flag.StringVar(&cfg.Log, "log", cfg.Log, "log backend: zap, zerolog, logrus or gokit")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "refresh the tooltip with the uptime at this interval; 0 disables it")
	flag.BoolVar(&cfg.MessageOnly, "message-only", cfg.MessageOnly, "use a message-only window; icons are not restored after an explorer restart")
	flag.StringVar(&cfg.GUID, "guid", cfg.GUID, "identify the icon by this GUID, so the shell remembers its placement")
	flag.BoolVar(&cfg.Trace, "trace", cfg.Trace, "write a span per dispatched message to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: traydemo [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, flush, err := newLogger(cfg.Log, cfg.Verbosity)
	if err != nil {
		log.Fatal(err)
	}

	tp, shutdown, err := newTracerProvider(cfg.Trace)
	if err != nil {
		log.Fatal(err)
	}

	code, err := run(logger, tp, cfg)
	shutdown()
	if err != nil {
		logger.Error(err, "traydemo failed")
		if code == 0 {
			code = 1
		}
	}
	flush()
	os.Exit(code)
}

// newTracerProvider returns an exporting provider if enabled is set and a
// no-op one otherwise. shutdown flushes pending spans.
func newTracerProvider(enabled bool) (tp trace.TracerProvider, shutdown func(), err error) {
	if !enabled {
		return noop.NewTracerProvider(), func() {}, nil
	}
	exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, nil, err
	}
	sdk := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	return sdk, func() { sdk.Shutdown(context.Background()) }, nil
}

func run(logger logr.Logger, tp trace.TracerProvider, cfg config) (int, error) {
	host, err := computerName()
	if err != nil {
		return 1, err
	}
	user, err := userSID()
	if err != nil {
		// Not fatal: the tooltip just gets shorter.
		logger.Error(err, "reading token user")
	}
	tooltip := host
	if user != "" {
		tooltip = fmt.Sprintf("%s (%s)", host, user)
	}
	logger.Info("starting", "tooltip", tooltip)

	app, err := win32app.New(win32app.Native(), &win32app.Options{
		ClassName:      "winsafe_traydemo",
		Title:          "traydemo",
		MessageOnly:    cfg.MessageOnly,
		Logger:         logger.WithName("app"),
		TracerProvider: tp,
	})
	if err != nil {
		return 1, err
	}

	icon, err := native.LoadIcon(0, native.IDI_APPLICATION)
	if err != nil {
		app.Fail(err)
	}
	var guid *win32app.GUID
	if cfg.GUID != "" {
		g, err := windows.GUIDFromString(cfg.GUID)
		if err != nil {
			app.Fail(err)
		}
		guid = (*win32app.GUID)(&g)
	}

	var ic *win32app.TrayIcon
	showBalloon := func() error {
		return ic.ShowBalloon(win32app.Balloon{
			Title: "traydemo",
			Text:  "Running on " + host,
			Kind:  win32app.BalloonInfo,
		})
	}
	ic, err = app.AddIcon(win32app.IconOptions{
		IconState: win32app.IconState{Icon: uintptr(icon), Tooltip: tooltip},
		GUID:      guid,
		OnEvent: func(ev win32app.TrayEvent) error {
			switch ev.Kind {
			case win32app.TrayActivated:
				if r, err := ic.Rect(); err == nil {
					logger.V(1).Info("icon activated", "rect", r)
				}
				return showBalloon()
			case win32app.TrayContextMenu:
				return showMenu(app, int32(ev.X), int32(ev.Y))
			}
			return nil
		},
	})
	if err != nil {
		app.Fail(err)
	}

	err = app.Handle(win32app.WM_COMMAND, func(m win32app.Msg) (uintptr, error) {
		cmd := win32app.DecodeCommand(m)
		if cmd.Kind != win32app.CommandMenuItem {
			return app.DefWindowProc(m), nil
		}
		switch cmd.ID {
		case cmdBalloon:
			return 0, showBalloon()
		case cmdQuit:
			logger.Info("quit requested from the tray")
			return 0, app.Quit(0)
		}
		return 0, nil
	})
	if err != nil {
		app.Fail(err)
	}

	stop, err := app.RegisterMessage(func(win32app.Msg) (uintptr, error) {
		logger.Info("interrupted")
		return 0, app.Quit(130)
	})
	if err != nil {
		app.Fail(err)
	}
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		<-sig
		if err := app.Post(stop, 0, 0); err != nil {
			logger.Error(err, "posting stop")
		}
	}()

	if cfg.Interval > 0 && ic != nil {
		start := time.Now()
		refresh, err := app.RegisterMessage(func(win32app.Msg) (uintptr, error) {
			up := time.Since(start).Round(time.Second)
			return 0, ic.SetTooltip(fmt.Sprintf("%s, up %v", tooltip, up))
		})
		if err != nil {
			app.Fail(err)
		}
		done := make(chan struct{})
		defer close(done)
		go func() {
			t := time.NewTicker(cfg.Interval)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					if app.Post(refresh, 0, 0) != nil {
						return
					}
				}
			}
		}()
	}

	return app.Run()
}

// showMenu shows the context menu at x, y. The chosen item arrives as
// WM_COMMAND.
func showMenu(app *win32app.App, x, y int32) error {
	h, err := native.CreatePopupMenu()
	if err != nil {
		return err
	}
	menu := guard.DestroyMenu(h)
	defer menu.Dispose()

	items := []struct {
		id   uintptr
		text string
	}{
		{cmdBalloon, "Show balloon"},
		{cmdQuit, "Quit"},
	}
	for _, it := range items {
		text, err := windows.UTF16PtrFromString(it.text)
		if err != nil {
			return err
		}
		if err := native.AppendMenu(h, native.MF_STRING, it.id, text); err != nil {
			return err
		}
	}

	// Without this the menu does not close when the user clicks elsewhere.
	hwnd := windows.Handle(app.Window())
	native.SetForegroundWindow(hwnd)
	if err := native.TrackPopupMenuEx(h, native.TPM_RIGHTBUTTON|native.TPM_BOTTOMALIGN, x, y, hwnd); err != nil {
		return err
	}
	return app.Post(native.WM_NULL, 0, 0)
}

func computerName() (string, error) {
	const nameType = windows.ComputerNamePhysicalDnsHostname
	return dualcall.String(
		func() (int, error) {
			var n uint32
			err := windows.GetComputerNameEx(nameType, nil, &n)
			return int(n), err
		},
		func(buf []uint16) (int, error) {
			n := uint32(len(buf))
			err := windows.GetComputerNameEx(nameType, &buf[0], &n)
			if err != nil {
				// On ERROR_MORE_DATA n is the new size.
				return int(n), err
			}
			return int(n), nil
		},
	)
}

func userSID() (string, error) {
	tok, err := guard.AcquireOut(func(t *windows.Token) error {
		return windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, t)
	}, windows.Token.Close)
	if err != nil {
		return "", err
	}
	defer tok.Dispose()

	buf, err := dualcall.Call(
		func() (int, error) {
			var n uint32
			err := windows.GetTokenInformation(tok.Handle(), windows.TokenUser, nil, 0, &n)
			return int(n), err
		},
		func(buf []byte) (int, error) {
			n := uint32(len(buf))
			err := windows.GetTokenInformation(tok.Handle(), windows.TokenUser, &buf[0], n, &n)
			return int(n), err
		},
	)
	if err != nil || len(buf) == 0 {
		return "", err
	}
	tu := (*windows.Tokenuser)(unsafe.Pointer(&buf[0]))
	return tu.User.Sid.String(), nil
}
