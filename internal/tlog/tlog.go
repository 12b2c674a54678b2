// Package tlog wraps log/slog with the handler/level/format shim
// MacroPower-x/log uses, so the schema store and CLI configure logging
// the same way instead of each picking their own slog setup.
package tlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Format is the log output format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatLogfmt  Format = "logfmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownLevel    = errors.New("unknown log level")
	ErrUnknownFormat   = errors.New("unknown log format")
)

// NewFromStrings builds a *slog.Logger from CLI-friendly level/format
// strings (see cmd/tombi), returning ErrInvalidArgument on a bad value.
func NewFromStrings(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	fmtt, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return slog.New(NewHandler(w, lvl, fmtt)), nil
}

// NewHandler builds a slog.Handler for the given level and format.
func NewHandler(w io.Writer, lvl slog.Level, format Format) slog.Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
}

func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, ErrUnknownLevel
}

func GetFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatLogfmt, "":
		return FormatLogfmt, nil
	}
	return "", ErrUnknownFormat
}

// Discard is a logger that drops everything, used as the default for
// packages (validator, schemastore) that take an optional *slog.Logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
