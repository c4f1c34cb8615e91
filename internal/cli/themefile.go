package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// writeTheme replaces the theme at path with content. The previous content
// is kept in path+".backup" and the new file is swapped in atomically.
func writeTheme(path string, previous, content []byte, log hclog.Logger) error {
	if len(previous) > 0 {
		backupPath := path + ".backup"
		if err := os.WriteFile(backupPath, previous, 0o644); err != nil { // #nosec G306 - Theme files need standard read permissions
			// A missing backup does not block the update.
			log.Warn("could not create theme backup", "path", backupPath, "error", err)
		} else {
			log.Debug("created theme backup", "path", backupPath)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary theme: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write theme: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write theme: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { // #nosec G302 - Theme files need standard read permissions
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set theme permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace theme: %w", err)
	}

	return nil
}
