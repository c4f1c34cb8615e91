package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOriginalFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	// Written by the previous Windows release of the tool.
	data := `{
  "SourceDirectory": "C:\\Wallpapers",
  "VencordDirectory": "C:\\Users\\me\\AppData\\Roaming\\Vencord",
  "AutoRun": true,
  "AutoRunSet": true,
  "HasRunBefore": true,
  "Language": "de",
  "LanguageSet": true,
  "AccentColorBright": true,
  "UseSubfolders": false
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found != path {
		t.Errorf("found = %q, want %q", found, path)
	}
	if cfg.SourceDirectory != `C:\Wallpapers` {
		t.Errorf("SourceDirectory = %q", cfg.SourceDirectory)
	}
	if cfg.Language != "de" || !cfg.LanguageSet {
		t.Errorf("Language = %q, LanguageSet = %v", cfg.Language, cfg.LanguageSet)
	}
	if !cfg.AccentColorBright {
		t.Error("AccentColorBright = false, want true")
	}
	if cfg.ThemeFile != DefaultThemeFile {
		t.Errorf("ThemeFile = %q, want default", cfg.ThemeFile)
	}
	if cfg.KeepLogs != DefaultKeepLogs {
		t.Errorf("KeepLogs = %d, want %d", cfg.KeepLogs, DefaultKeepLogs)
	}
	if !cfg.UseNeutralFallback() {
		t.Error("UseNeutralFallback() should default to true")
	}
}

func TestLoadCaseInsensitiveKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"sourcedirectory":"/src","vencordDirectory":"/v"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SourceDirectory != "/src" || cfg.VencordDirectory != "/v" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "a", FileName)
	second := filepath.Join(dir, "b", FileName)

	if err := Save(&Config{SourceDirectory: "/second"}, second); err != nil {
		t.Fatal(err)
	}

	cfg, found, err := Load(missing, second)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found != second || cfg.SourceDirectory != "/second" {
		t.Errorf("Load() = %+v from %q", cfg, found)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	off := false
	want := Default()
	want.SourceDirectory = "/pics"
	want.VencordDirectory = "/vencord"
	want.UseSubfolders = true
	want.NeutralFallback = &off

	if err := Save(want, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	got, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.SourceDirectory != want.SourceDirectory || !got.UseSubfolders {
		t.Errorf("round trip = %+v", got)
	}
	if got.UseNeutralFallback() {
		t.Error("NeutralFallback=false was not persisted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "complete", cfg: Config{SourceDirectory: "/a", VencordDirectory: "/b"}},
		{name: "no source", cfg: Config{VencordDirectory: "/b"}, wantErr: true},
		{name: "no vencord", cfg: Config{SourceDirectory: "/a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	cfg.VencordDirectory = filepath.Join("home", "vencord")

	if got, want := cfg.ThemePath(), filepath.Join("home", "vencord", "themes", DefaultThemeFile); got != want {
		t.Errorf("ThemePath() = %q, want %q", got, want)
	}
	if got, want := cfg.AssetDirPath(), filepath.Join("home", "vencord", "themes", DefaultAssetDir); got != want {
		t.Errorf("AssetDirPath() = %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSourceDir, "/env/src")
	t.Setenv(EnvLanguage, "de")
	t.Setenv(EnvBrightAccent, "true")

	cfg := Default()
	if err := ApplyEnv(cfg); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.SourceDirectory != "/env/src" {
		t.Errorf("SourceDirectory = %q", cfg.SourceDirectory)
	}
	if cfg.Language != "de" || !cfg.LanguageSet {
		t.Errorf("Language = %q, LanguageSet = %v", cfg.Language, cfg.LanguageSet)
	}
	if !cfg.AccentColorBright {
		t.Error("AccentColorBright not set from env")
	}
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvSubfolders, "sometimes")

	if err := ApplyEnv(Default()); err == nil {
		t.Error("ApplyEnv() accepted an invalid boolean")
	}
}
