// Package autostart registers the program to run when the user logs in.
package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the entry name used for the login item.
const DefaultName = "RandomDiscordHintergrund"

// ErrUnsupported is returned on platforms without a supported login item mechanism.
var ErrUnsupported = errors.New("autostart is not supported on this platform")

// Command returns the quoted absolute path of the running executable.
func Command() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return quote(exe), nil
}

func quote(path string) string {
	return `"` + path + `"`
}

// Sync brings the login item in line with enabled, returning whether a change
// was made.
func Sync(name, command string, enabled bool) (bool, error) {
	registered, err := Registered(name)
	if err != nil {
		return false, err
	}

	switch {
	case enabled && !registered:
		return true, Register(name, command)
	case !enabled && registered:
		return true, Unregister(name)
	}
	return false, nil
}
