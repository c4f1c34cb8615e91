package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ulikunitz/xz"
)

const (
	logExt        = ".log"
	compressedExt = ".log.xz"

	// compressedFactor bounds the number of compressed logs relative to keep.
	compressedFactor = 4
)

// PruneResult reports what Prune did.
type PruneResult struct {
	Compressed []string
	Removed    []string
}

// Prune keeps the newest keep plain run logs in dir, compresses older ones
// with xz, and deletes compressed logs beyond compressedFactor*keep.
// Log names sort chronologically, so no file times are consulted.
func Prune(dir string, keep int) (*PruneResult, error) {
	if keep < 1 {
		return nil, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &PruneResult{}, nil
		}
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	var plain, compressed []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "run_") {
			continue
		}
		switch {
		case strings.HasSuffix(e.Name(), compressedExt):
			compressed = append(compressed, e.Name())
		case strings.HasSuffix(e.Name(), logExt):
			plain = append(plain, e.Name())
		}
	}
	slices.Sort(plain)

	result := &PruneResult{}
	if len(plain) > keep {
		for _, name := range plain[:len(plain)-keep] {
			path := filepath.Join(dir, name)
			if err := compressFile(path, path+".xz"); err != nil {
				return result, err
			}
			if err := os.Remove(path); err != nil {
				return result, fmt.Errorf("failed to remove %s: %w", name, err)
			}
			result.Compressed = append(result.Compressed, path+".xz")
			compressed = append(compressed, name+".xz")
		}
	}

	slices.Sort(compressed)
	if limit := keep * compressedFactor; len(compressed) > limit {
		for _, name := range compressed[:len(compressed)-limit] {
			path := filepath.Join(dir, name)
			if err := os.Remove(path); err != nil {
				return result, fmt.Errorf("failed to remove %s: %w", name, err)
			}
			result.Removed = append(result.Removed, path)
		}
	}

	return result, nil
}

// compressFile writes an xz-compressed copy of src to dst.
func compressFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - Log file inside the application log directory
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 - Log file inside the application log directory
	if err != nil {
		return fmt.Errorf("failed to create compressed log: %w", err)
	}

	xzw, err := xz.NewWriter(out)
	if err != nil {
		out.Close()
		return fmt.Errorf("failed to create xz writer: %w", err)
	}

	_, copyErr := io.Copy(xzw, in)
	xzErr := xzw.Close()
	closeErr := out.Close()

	switch {
	case copyErr != nil:
		return fmt.Errorf("failed to compress log: %w", copyErr)
	case xzErr != nil:
		return fmt.Errorf("failed to finish compressed log: %w", xzErr)
	case closeErr != nil:
		return fmt.Errorf("failed to close compressed log: %w", closeErr)
	}

	return nil
}

// ReadCompressed returns the contents of an xz-compressed log.
func ReadCompressed(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 - Log file inside the application log directory
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed log: %w", err)
	}
	defer f.Close()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}

	data, err := io.ReadAll(xzr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress log: %w", err)
	}
	return data, nil
}
