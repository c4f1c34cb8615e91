// Package discord locates the Vencord installation and the Discord clients
// that load its themes.
package discord

import (
	"os"
	"path/filepath"
)

// VencordDirName is the folder Vencord creates in the user config directory.
const VencordDirName = "Vencord"

// DefaultVencordDir returns the Vencord directory in the user config directory
// (%APPDATA% on Windows, ~/.config on Linux) and whether it exists.
func DefaultVencordDir() (string, bool) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	dir := filepath.Join(base, VencordDirName)
	return dir, IsVencordDir(dir)
}

// IsVencordDir reports whether dir is an existing directory. The themes
// folder inside it is created on demand.
func IsVencordDir(dir string) bool {
	if dir == "" {
		return false
	}
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
