package tlog

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestGetLevelAcceptsKnownNames(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"debug":   slog.LevelDebug,
	}
	for in, want := range cases {
		got, err := GetLevel(in)
		if err != nil {
			t.Errorf("GetLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("GetLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetLevelRejectsUnknownName(t *testing.T) {
	if _, err := GetLevel("verbose"); err != ErrUnknownLevel {
		t.Errorf("GetLevel(\"verbose\") err = %v, want ErrUnknownLevel", err)
	}
}

func TestGetFormatAcceptsKnownNames(t *testing.T) {
	cases := map[string]Format{
		"":       FormatLogfmt,
		"logfmt": FormatLogfmt,
		"JSON":   FormatJSON,
	}
	for in, want := range cases {
		got, err := GetFormat(in)
		if err != nil {
			t.Errorf("GetFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("GetFormat(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestGetFormatRejectsUnknownName(t *testing.T) {
	if _, err := GetFormat("yaml"); err != ErrUnknownFormat {
		t.Errorf("GetFormat(\"yaml\") err = %v, want ErrUnknownFormat", err)
	}
}

func TestNewFromStringsRejectsBadLevel(t *testing.T) {
	if _, err := NewFromStrings(&bytes.Buffer{}, "deafening", "json"); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}

func TestNewFromStringsWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewFromStrings(&buf, "info", "json")
	if err != nil {
		t.Fatalf("NewFromStrings: %v", err)
	}
	logger.Info("schema fetched", "uri", "https://example.com/schema.json")
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"schema fetched"`)) {
		t.Errorf("expected JSON-formatted output, got %q", buf.String())
	}
}

func TestDiscardDropsOutput(t *testing.T) {
	// Discard's handler targets io.Discard directly, so there is no
	// buffer to assert against; this just confirms it never panics.
	Discard().Info("anything")
}
