// Package image provides utilities for loading and picking wallpaper images.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/webp" // Register WebP format
)

// ErrNoCandidates is returned when no image is left to choose from.
var ErrNoCandidates = errors.New("no candidate images")

// LoadError reports an image that could not be opened or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader handles loading images.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, BMP, WebP.
// Errors are always of type *LoadError.
func (l *FileLoader) Load(path string) (image.Image, error) {
	if path == "" {
		return nil, &LoadError{Path: path, Err: errors.New("image path cannot be empty")}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Err: errors.New("path is a directory, not a file")}
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("decode (format: %q): %w", format, err)}
	}

	return img, nil
}

// SupportedImageExtensions returns the file extensions considered wallpapers.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".bmp", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns all image files in a directory, sorted.
// With recursive set, subdirectories are searched as well.
func ScanDirectoryForImages(dirPath string, recursive bool) ([]string, error) {
	info, err := os.Stat(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dirPath)
	}

	var imageFiles []string
	err = filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip entries we can't read (permission issues).
			if d != nil && d.IsDir() && path != dirPath {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != dirPath && !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if IsImageFile(d.Name()) {
			imageFiles = append(imageFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	slices.Sort(imageFiles)
	return imageFiles, nil
}

// SelectRandomImage picks a random path whose file name differs from exclude.
func SelectRandomImage(rng *rand.Rand, imagePaths []string, exclude string) (string, error) {
	candidates := imagePaths
	if exclude != "" {
		candidates = slices.DeleteFunc(slices.Clone(imagePaths), func(p string) bool {
			return filepath.Base(p) == exclude
		})
	}

	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	return candidates[rng.IntN(len(candidates))], nil
}

// CopyFile copies src to dst, replacing dst if it exists.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) // #nosec G304 - Source wallpaper chosen by the user
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst) // #nosec G304 - Destination inside the Vencord themes folder
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy image: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close destination: %w", err)
	}

	return nil
}
