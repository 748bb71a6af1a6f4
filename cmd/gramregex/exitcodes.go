// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/gramregex/gramregex"
)

// Exit codes for the gramregex CLI.
const (
	ExitOK      = 0 // Text generated and printed.
	ExitFailure = 1 // The provider call failed or returned no text.
	ExitUsage   = 2 // Invalid arguments, unreadable grammar file, bad grammar config.
	ExitConfig  = 3 // Missing API key or unsupported provider.
)

type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitUsage:
			msg = "gramregex: invalid usage"
		case ExitConfig:
			msg = "gramregex: configuration error"
		default:
			msg = "gramregex: error"
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// exitCodeFor maps a library error onto the CLI exit code taxonomy.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, gramregex.ErrConfiguration),
		errors.Is(err, gramregex.ErrUnsupportedProvider):
		return ExitConfig
	case errors.Is(err, gramregex.ErrInvalidArgument),
		errors.Is(err, gramregex.ErrInvalidOption),
		errors.Is(err, gramregex.ErrIO),
		errors.Is(err, gramregex.ErrNotFound),
		errors.Is(err, gramregex.ErrParse),
		errors.Is(err, gramregex.ErrSchema):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// wrapExit converts err into an exitCodeError carrying its exit code.
func wrapExit(err error) error {
	if err == nil {
		return nil
	}
	var ece *exitCodeError
	if errors.As(err, &ece) {
		return err
	}
	return exitError(exitCodeFor(err), "gramregex: %v", err)
}
