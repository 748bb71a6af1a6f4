// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"slices"
	"strings"
)

// enumValue is a pflag.Value restricted to a fixed set of strings. An empty
// value is accepted only when the flag is optional.
type enumValue struct {
	value    *string
	allowed  []string
	optional bool
	typ      string
}

func newEnumValue(p *string, def string, allowed []string, optional bool, typ string) *enumValue {
	*p = def
	return &enumValue{value: p, allowed: allowed, optional: optional, typ: typ}
}

func (e *enumValue) String() string { return *e.value }

func (e *enumValue) Set(s string) error {
	if (s == "" && e.optional) || slices.Contains(e.allowed, s) {
		*e.value = s
		return nil
	}
	return fmt.Errorf("invalid value %q, must be one of: %s", s, strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return e.typ }
