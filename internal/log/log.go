// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package log configures structured logging for gramregex using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvFormat selects the handler: "json" for JSON lines, anything else for
// the default text handler.
const EnvFormat = "GRAMREGEX_LOG_FORMAT"

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output goes to w, or stderr when w is nil. Generated text is always
// written to stdout by the caller, so logs never mix with it.
func Setup(w io.Writer, verbose, quiet bool) {
	var level slog.Level
	switch {
	case quiet:
		level = slog.LevelWarn
	case verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(os.Getenv(EnvFormat), "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}
