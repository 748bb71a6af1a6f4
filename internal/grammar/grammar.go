// Copyright 2026 The Gramregex Authors
// SPDX-License-Identifier: MIT

// Package grammar decides which grammar definition a generation call sends:
// an inline string, the contents of a grammar file, or the content of a
// grammar config.
package grammar

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"unicode/utf8"

	"github.com/gramregex/gramregex/internal/grammarconfig"
	"github.com/gramregex/gramregex/internal/testable"
)

var (
	// ErrInvalidArgument is returned when inline grammar text and a grammar
	// file are both supplied.
	ErrInvalidArgument = errors.New("--grammar and --grammar-file cannot be used together")

	// ErrIO is returned when a grammar file or grammar config cannot be read.
	// Grammar files must also be valid UTF-8.
	ErrIO = grammarconfig.ErrIO
)

// Resolver resolves grammars using an injectable file system.
type Resolver struct {
	FS testable.FileSystem
}

// Resolve picks the grammar to send. Inline text and filePath are mutually
// exclusive. A file is returned byte for byte; inline text is returned as
// given; otherwise the content of the config at configPath, or the bundled
// default config when configPath is empty, is used.
func (r Resolver) Resolve(inline, filePath, configPath string) (string, error) {
	if inline != "" && filePath != "" {
		return "", ErrInvalidArgument
	}

	if filePath != "" {
		data, err := r.fileSystem().ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrIO, filePath, err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrIO, filePath)
		}
		slog.Debug("grammar loaded from file", "path", filePath, "bytes", len(data))
		return string(data), nil
	}

	if inline != "" {
		slog.Debug("grammar supplied inline", "bytes", len(inline))
		return inline, nil
	}

	var (
		cfg *grammarconfig.GrammarConfig
		err error
	)
	if configPath != "" {
		cfg, err = grammarconfig.Load(configPath)
	} else {
		cfg, err = grammarconfig.LoadDefault()
	}
	if err != nil {
		return "", err
	}
	slog.Debug("grammar loaded from config", "name", cfg.Name, "path", configPath)
	return cfg.Content, nil
}

// CheckFile verifies that path names a readable regular file without reading
// it, so callers can reject bad arguments before doing any other work.
func (r Resolver) CheckFile(path string) error {
	fsys := r.fileSystem()
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s does not exist", ErrIO, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s is not readable: %w", ErrIO, path, err)
	}
	return f.Close()
}

func (r Resolver) fileSystem() testable.FileSystem {
	if r.FS == nil {
		return testable.DefaultFS
	}
	return r.FS
}

// CheckFile is Resolver.CheckFile on the real file system.
func CheckFile(path string) error {
	return Resolver{}.CheckFile(path)
}

// Resolve is Resolver.Resolve on the real file system.
func Resolve(inline, filePath, configPath string) (string, error) {
	return Resolver{}.Resolve(inline, filePath, configPath)
}
