// Package config loads and saves the vencordbg configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// FileName is the name of the configuration file.
	FileName = "config.json"

	// DefaultThemeFile is the theme stylesheet patched inside the themes folder.
	DefaultThemeFile = "Translucence.theme.css"

	// DefaultThemeURL is where the theme is downloaded from when missing.
	DefaultThemeURL = "https://raw.githubusercontent.com/CapnKitten/Translucence/master/Translucence.theme.css"

	// DefaultAssetDir is the folder below themes that holds the wallpaper.
	DefaultAssetDir = "Hintergrundbild"

	// DefaultKeepLogs is the number of uncompressed run logs kept.
	DefaultKeepLogs = 10
)

// ErrNotFound is returned when no configuration file exists.
var ErrNotFound = errors.New("configuration file not found")

// Config holds the persisted settings. Keys match the original config.json
// layout so existing files keep working.
type Config struct {
	SourceDirectory   string `json:"SourceDirectory"`
	VencordDirectory  string `json:"VencordDirectory"`
	AutoRun           bool   `json:"AutoRun"`
	AutoRunSet        bool   `json:"AutoRunSet"`
	HasRunBefore      bool   `json:"HasRunBefore"`
	Language          string `json:"Language"`
	LanguageSet       bool   `json:"LanguageSet"`
	AccentColorBright bool   `json:"AccentColorBright"`
	UseSubfolders     bool   `json:"UseSubfolders"`

	// NeutralFallback writes the zero accent when the image has no vibrant
	// pixel. When false the accent directives are left unchanged instead.
	NeutralFallback *bool `json:"NeutralFallback,omitempty"`

	ThemeFile string `json:"ThemeFile,omitempty"`
	ThemeURL  string `json:"ThemeURL,omitempty"`
	AssetDir  string `json:"AssetDir,omitempty"`
	KeepLogs  int    `json:"KeepLogs,omitempty"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Language:  "en",
		ThemeFile: DefaultThemeFile,
		ThemeURL:  DefaultThemeURL,
		AssetDir:  DefaultAssetDir,
		KeepLogs:  DefaultKeepLogs,
	}
}

// applyDefaults fills empty optional fields.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Language == "" {
		c.Language = def.Language
	}
	if c.ThemeFile == "" {
		c.ThemeFile = def.ThemeFile
	}
	if c.ThemeURL == "" {
		c.ThemeURL = def.ThemeURL
	}
	if c.AssetDir == "" {
		c.AssetDir = def.AssetDir
	}
	if c.KeepLogs <= 0 {
		c.KeepLogs = def.KeepLogs
	}
}

// UseNeutralFallback reports whether a degenerate sample is written as the
// zero accent. Defaults to true.
func (c *Config) UseNeutralFallback() bool {
	return c.NeutralFallback == nil || *c.NeutralFallback
}

// Validate checks that the required directories are configured.
func (c *Config) Validate() error {
	if c.SourceDirectory == "" {
		return fmt.Errorf("source directory is not set")
	}
	if c.VencordDirectory == "" {
		return fmt.Errorf("vencord directory is not set")
	}
	return nil
}

// ThemesDir returns the Vencord themes directory.
func (c *Config) ThemesDir() string {
	return filepath.Join(c.VencordDirectory, "themes")
}

// AssetDirPath returns the directory the active wallpaper is copied to.
func (c *Config) AssetDirPath() string {
	return filepath.Join(c.ThemesDir(), c.AssetDir)
}

// ThemePath returns the path of the theme stylesheet.
func (c *Config) ThemePath() string {
	return filepath.Join(c.ThemesDir(), c.ThemeFile)
}

// CandidatePaths returns the locations searched for the config file, in order.
func CandidatePaths() []string {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), FileName))
	}
	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, FileName))
	}
	return paths
}

// DefaultPath returns where a new config file is written: the first existing
// candidate, or the file next to the executable.
func DefaultPath() string {
	paths := CandidatePaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(paths) == 0 {
		return FileName
	}
	return paths[0]
}

// Load reads the first existing file among paths. If paths is empty the
// CandidatePaths are searched. It returns ErrNotFound when none exists.
func Load(paths ...string) (*Config, string, error) {
	if len(paths) == 0 {
		paths = CandidatePaths()
	}

	for _, p := range paths {
		f, err := os.Open(p) // #nosec G304 - Config path is controlled by the user
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, p, fmt.Errorf("failed to open config: %w", err)
		}

		var cfg Config
		decodeErr := json.NewDecoder(f).Decode(&cfg)
		f.Close()
		if decodeErr != nil {
			return nil, p, fmt.Errorf("failed to parse config %s: %w", p, decodeErr)
		}

		cfg.applyDefaults()
		return &cfg, p, nil
	}

	return nil, "", ErrNotFound
}

// Save writes cfg to path as indented JSON. The file is replaced atomically.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Config directory needs standard permissions
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil { // #nosec G306 - Config is not secret
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config: %w", err)
	}

	return nil
}

// Environment variables that override file settings.
const (
	EnvSourceDir    = "VENCORDBG_SOURCE_DIR"
	EnvVencordDir   = "VENCORDBG_VENCORD_DIR"
	EnvLanguage     = "VENCORDBG_LANGUAGE"
	EnvBrightAccent = "VENCORDBG_BRIGHT_ACCENT"
	EnvSubfolders   = "VENCORDBG_SUBFOLDERS"
)

// ApplyEnv overrides settings from the environment.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvSourceDir); v != "" {
		cfg.SourceDirectory = v
	}
	if v := os.Getenv(EnvVencordDir); v != "" {
		cfg.VencordDirectory = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		cfg.Language = v
		cfg.LanguageSet = true
	}

	bools := []struct {
		env string
		dst *bool
	}{
		{EnvBrightAccent, &cfg.AccentColorBright},
		{EnvSubfolders, &cfg.UseSubfolders},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", b.env, v, err)
		}
		*b.dst = parsed
	}

	return nil
}
