package runlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSessionPrintf(t *testing.T) {
	var console bytes.Buffer
	s := New(&console, io.Discard, LevelNormal)

	s.Printf("copied %s", "a.png")

	if got := console.String(); got != "copied a.png\n" {
		t.Errorf("console = %q", got)
	}
	if got := s.Contents(); got != "copied a.png\n" {
		t.Errorf("Contents() = %q", got)
	}
}

func TestSessionQuiet(t *testing.T) {
	var console bytes.Buffer
	s := New(&console, io.Discard, LevelQuiet)

	s.Printf("hidden")
	fmt.Fprintln(s.Writer(), "also hidden")

	if console.Len() != 0 {
		t.Errorf("quiet session wrote to console: %q", console.String())
	}
	if got := s.Contents(); !strings.Contains(got, "hidden") || !strings.Contains(got, "also hidden") {
		t.Errorf("Contents() = %q, want both lines recorded", got)
	}
}

func TestSessionLoggerIsRecorded(t *testing.T) {
	var console, diag bytes.Buffer
	s := New(&console, &diag, LevelNormal)

	s.Logger().Warn("theme backup failed", "path", "/x")
	s.Logger().Debug("sampled image")

	if !strings.Contains(diag.String(), "theme backup failed") {
		t.Errorf("warning missing from diagnostics: %q", diag.String())
	}
	if strings.Contains(diag.String(), "sampled image") {
		t.Errorf("debug line shown at normal level: %q", diag.String())
	}
	if console.Len() != 0 {
		t.Errorf("logger wrote to the user console: %q", console.String())
	}
	if !strings.Contains(s.Contents(), "sampled image") {
		t.Errorf("debug line missing from run log: %q", s.Contents())
	}
	if !strings.Contains(s.Contents(), "theme backup failed") {
		t.Errorf("warning missing from run log: %q", s.Contents())
	}
}

func TestSessionFlush(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	s := New(&bytes.Buffer{}, io.Discard, LevelNormal)
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	s.started = fixed

	s.Printf("hello")
	path, err := s.Flush(dir, 7)
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if want := filepath.Join(dir, "run_20250304_050607.log"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Timestamp: 2025-03-04T05:06:07Z\nExitCode: 7\n\nhello\n"
	if string(data) != want {
		t.Errorf("log = %q, want %q", data, want)
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for i := 1; i <= 5; i++ {
		write(fmt.Sprintf("run_2025010%d_000000.log", i), fmt.Sprintf("log %d", i))
	}
	write("unrelated.txt", "keep me")

	res, err := Prune(dir, 2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if len(res.Compressed) != 3 {
		t.Errorf("compressed %d logs, want 3", len(res.Compressed))
	}

	for i := 4; i <= 5; i++ {
		if _, err := os.Stat(filepath.Join(dir, fmt.Sprintf("run_2025010%d_000000.log", i))); err != nil {
			t.Errorf("newest log %d missing: %v", i, err)
		}
	}

	data, err := ReadCompressed(filepath.Join(dir, "run_20250101_000000.log.xz"))
	if err != nil {
		t.Fatalf("ReadCompressed() error = %v", err)
	}
	if string(data) != "log 1" {
		t.Errorf("decompressed = %q, want %q", data, "log 1")
	}

	if _, err := os.Stat(filepath.Join(dir, "unrelated.txt")); err != nil {
		t.Error("unrelated file was touched")
	}
}

func TestPruneRemovesOldCompressed(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 6; i++ {
		name := fmt.Sprintf("run_2024010%d_000000.log.xz", i)
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	res, err := Prune(dir, 1)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if len(res.Removed) != 2 {
		t.Errorf("removed %d compressed logs, want 2", len(res.Removed))
	}
	if _, err := os.Stat(filepath.Join(dir, "run_20240100_000000.log.xz")); !os.IsNotExist(err) {
		t.Error("oldest compressed log still present")
	}
}

func TestPruneMissingDirectory(t *testing.T) {
	res, err := Prune(filepath.Join(t.TempDir(), "absent"), 3)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if len(res.Compressed) != 0 || len(res.Removed) != 0 {
		t.Errorf("Prune() = %+v, want no-op", res)
	}
}
