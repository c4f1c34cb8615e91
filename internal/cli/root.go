// Package cli provides the command-line interface for vencordbg.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/vencordbg/internal/autostart"
	"github.com/jmylchreest/vencordbg/internal/discord"
	"github.com/jmylchreest/vencordbg/internal/image"
	"github.com/jmylchreest/vencordbg/internal/prompt"
	"github.com/jmylchreest/vencordbg/internal/runlog"
	"github.com/jmylchreest/vencordbg/internal/version"
)

// loginItems manages the autostart entry.
type loginItems interface {
	Registered(name string) (bool, error)
	Register(name, command string) error
	Unregister(name string) error
	Command() (string, error)
}

// systemLoginItems uses the platform autostart mechanism.
type systemLoginItems struct{}

func (systemLoginItems) Registered(name string) (bool, error) { return autostart.Registered(name) }
func (systemLoginItems) Register(name, command string) error  { return autostart.Register(name, command) }
func (systemLoginItems) Unregister(name string) error         { return autostart.Unregister(name) }
func (systemLoginItems) Command() (string, error)             { return autostart.Command() }

// app carries global flags and the collaborators commands depend on. Tests
// replace the collaborators to run without a terminal, network or registry.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    bool
	quiet      bool
	noInput    bool
	configPath string

	// langDir holds optional language files overriding the embedded ones.
	langDir string
	// logDir receives the run logs.
	logDir string

	newPrompter func(noInput bool) prompt.Prompter
	images      image.Loader
	rng         *rand.Rand
	fetchTheme  func(ctx context.Context, url, dest string) error
	loginItems  loginItems
	clients     func() ([]string, error)
	vencordDir  func() (string, bool)
}

func newApp() *app {
	return &app{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		langDir:     exeRelative("lang"),
		logDir:      runlog.DefaultDir(),
		newPrompter: prompt.New,
		images:      image.NewFileLoader(),
		rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		fetchTheme:  discord.FetchTheme,
		loginItems:  systemLoginItems{},
		clients:     discord.RunningClients,
		vencordDir:  discord.DefaultVencordDir,
	}
}

// exeRelative returns name resolved next to the running executable.
func exeRelative(name string) string {
	exe, err := os.Executable()
	if err != nil {
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

// level maps the global flags to a log level.
func (a *app) level() runlog.Level {
	switch {
	case a.quiet:
		return runlog.LevelQuiet
	case a.verbose:
		return runlog.LevelVerbose
	default:
		return runlog.LevelNormal
	}
}

// NewRootCmd builds the vencordbg command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	applyCmd := newApplyCmd(a)

	rootCmd := &cobra.Command{
		Use:   "vencordbg",
		Short: "Random Discord wallpapers with matching Vencord accents",
		Long: `vencordbg picks a random wallpaper from a folder, installs it as the
background of a Vencord theme and tunes the theme's accent colour to the
most vibrant colour of the image.

Run without a subcommand to apply a new wallpaper. The first run asks for
the wallpaper and Vencord folders and stores them in config.json next to
the executable.`,
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          applyCmd.RunE,
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&a.noInput, "no-input", false, "never prompt; fail when a setting is missing")
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config.json")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// The root command runs apply, so it accepts the apply flags too.
	rootCmd.Flags().AddFlagSet(applyCmd.Flags())

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(newSampleCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newAutostartCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

func newVersionCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date, Go version and platform of this build.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
