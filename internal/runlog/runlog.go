// Package runlog captures the output of a run and persists it as a log file.
package runlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Level selects how much diagnostic output the logger emits.
type Level int

const (
	// LevelQuiet suppresses everything except errors on the console.
	LevelQuiet Level = iota
	// LevelNormal shows user messages and warnings.
	LevelNormal
	// LevelVerbose adds debug output.
	LevelVerbose
)

// Session tees user-facing output and diagnostic logging to the console and
// an in-memory buffer that is written to a run log on exit.
type Session struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	console io.Writer
	quiet   bool
	started time.Time
	logger  hclog.Logger
	now     func() time.Time
}

// lockedWriter serialises writes to the session buffer.
type lockedWriter struct {
	s *Session
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return w.s.buf.Write(p)
}

// New creates a Session at the given level. User lines go to console,
// diagnostics from the logger go to diag.
func New(console, diag io.Writer, level Level) *Session {
	s := &Session{
		console: console,
		quiet:   level == LevelQuiet,
		now:     time.Now,
	}
	s.started = s.now()

	// The buffer always records debug output; diag only what the
	// level allows.
	hclogLevel := hclog.Warn
	switch level {
	case LevelQuiet:
		hclogLevel = hclog.Error
	case LevelVerbose:
		hclogLevel = hclog.Debug
	}

	logger := hclog.NewInterceptLogger(&hclog.LoggerOptions{
		Name:   "vencordbg",
		Output: diag,
		Level:  hclogLevel,
	})
	logger.RegisterSink(hclog.NewSinkAdapter(&hclog.LoggerOptions{
		Output:     lockedWriter{s},
		Level:      hclog.Debug,
		TimeFormat: "15:04:05.000",
	}))
	s.logger = logger

	return s
}

// Logger returns the diagnostic logger.
func (s *Session) Logger() hclog.Logger {
	return s.logger
}

// Printf writes a user-facing line to the console and the run log.
// A newline is automatically appended to the format string.
func (s *Session) Printf(format string, v ...any) {
	line := fmt.Sprintf(format+"\n", v...)
	if !s.quiet {
		fmt.Fprint(s.console, line)
	}
	lockedWriter{s}.Write([]byte(line))
}

// Writer returns a writer that records to the run log and echoes to the
// console unless the session is quiet.
func (s *Session) Writer() io.Writer {
	if s.quiet {
		return lockedWriter{s}
	}
	return io.MultiWriter(s.console, lockedWriter{s})
}

// Contents returns everything recorded so far.
func (s *Session) Contents() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("run_%s.log", t.Format("20060102_150405"))
}

// Flush writes the recorded output to a new file in dir and returns its path.
func (s *Session) Flush(dir string, exitCode int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Log directory needs standard permissions
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	now := s.now()
	path := filepath.Join(dir, FileName(s.started))

	var out bytes.Buffer
	fmt.Fprintf(&out, "Timestamp: %s\n", now.Format(time.RFC3339Nano))
	fmt.Fprintf(&out, "ExitCode: %d\n\n", exitCode)
	out.WriteString(s.Contents())

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil { // #nosec G306 - Log files need standard read permissions
		return "", fmt.Errorf("failed to write log: %w", err)
	}

	return path, nil
}

// DefaultDir returns the logs directory next to the executable.
func DefaultDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "logs"
	}
	return filepath.Join(filepath.Dir(exe), "logs")
}
