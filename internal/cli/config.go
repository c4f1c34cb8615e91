package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/vencordbg/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the settings loaded from config.json after environment overrides
(VENCORDBG_SOURCE_DIR, VENCORDBG_VENCORD_DIR, VENCORDBG_LANGUAGE,
VENCORDBG_BRIGHT_ACCENT, VENCORDBG_SUBFOLDERS) and the paths derived
from them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, _, err := a.loadConfig()
			if err != nil {
				return err
			}

			t := NewTable("Setting", "Value")
			t.AddRow("File", path)
			t.AddRow("SourceDirectory", cfg.SourceDirectory)
			t.AddRow("VencordDirectory", cfg.VencordDirectory)
			t.AddRow("Language", cfg.Language)
			t.AddRow("AutoRun", strconv.FormatBool(cfg.AutoRun))
			t.AddRow("AccentColorBright", strconv.FormatBool(cfg.AccentColorBright))
			t.AddRow("UseSubfolders", strconv.FormatBool(cfg.UseSubfolders))
			t.AddRow("NeutralFallback", strconv.FormatBool(cfg.UseNeutralFallback()))
			t.AddRow("KeepLogs", strconv.Itoa(cfg.KeepLogs))
			if cfg.VencordDirectory != "" {
				t.AddRow("Theme", cfg.ThemePath())
				t.AddRow("AssetFolder", cfg.AssetDirPath())
			}
			t.AddRow("ThemeURL", cfg.ThemeURL)

			fmt.Fprint(cmd.OutOrStdout(), t.Render())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	return cmd
}

// loadConfig loads the configuration and applies environment overrides.
// When no file exists it returns defaults, the path a new file would be
// written to, and found set to false.
func (a *app) loadConfig() (cfg *config.Config, path string, found bool, err error) {
	var paths []string
	if a.configPath != "" {
		paths = []string{a.configPath}
	}

	cfg, path, err = config.Load(paths...)
	switch {
	case errors.Is(err, config.ErrNotFound):
		cfg = config.Default()
		path = a.configPath
		if path == "" {
			path = config.DefaultPath()
		}
	case err != nil:
		return nil, path, false, err
	default:
		found = true
	}

	if err := config.ApplyEnv(cfg); err != nil {
		return nil, path, found, err
	}
	return cfg, path, found, nil
}
