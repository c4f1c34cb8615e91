//go:build linux || freebsd || openbsd || netbsd || dragonfly

package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the XDG autostart directory.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

func desktopFile(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".desktop"), nil
}

// desktopEntry renders a minimal autostart entry.
func desktopEntry(name, command string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", name)
	fmt.Fprintf(&b, "Exec=%s\n", command)
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}

// Register writes an XDG autostart desktop entry for command.
func Register(name, command string) error {
	path, err := desktopFile(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - Autostart directory needs standard permissions
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(desktopEntry(name, command)), 0o644); err != nil { // #nosec G306 - Desktop entries are world-readable
		return fmt.Errorf("failed to write desktop entry: %w", err)
	}
	return nil
}

// Unregister removes the desktop entry. A missing entry is not an error.
func Unregister(name string) error {
	path, err := desktopFile(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove desktop entry: %w", err)
	}
	return nil
}

// Registered reports whether a desktop entry exists for name.
func Registered(name string) (bool, error) {
	path, err := desktopFile(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check desktop entry: %w", err)
	}
	return true, nil
}
