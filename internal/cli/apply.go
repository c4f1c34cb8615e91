package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/vencordbg/internal/autostart"
	"github.com/jmylchreest/vencordbg/internal/colour"
	"github.com/jmylchreest/vencordbg/internal/config"
	"github.com/jmylchreest/vencordbg/internal/discord"
	"github.com/jmylchreest/vencordbg/internal/i18n"
	"github.com/jmylchreest/vencordbg/internal/image"
	"github.com/jmylchreest/vencordbg/internal/prompt"
	"github.com/jmylchreest/vencordbg/internal/runlog"
	"github.com/jmylchreest/vencordbg/internal/security"
	"github.com/jmylchreest/vencordbg/internal/theme"
	"github.com/jmylchreest/vencordbg/internal/version"
)

type applyOptions struct {
	dryRun bool
	image  string
}

func newApplyCmd(a *app) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Install a new random wallpaper and matching accent colour",
		Long: `Apply picks a random image from the wallpaper folder, copies it into the
Vencord themes folder, points the theme background at it and sets the
accent colour to the most vibrant colour of the image.

Missing settings are asked for interactively. With --no-input, or when no
terminal is attached, a missing setting ends the run with an error.

Exit codes:
  3  wallpaper folder invalid     8  image could not be copied
  4  Vencord folder invalid       9  theme could not be written
  5  theme download failed       10  autostart registration failed
  6  theme could not be read     11  configuration could not be saved
  7  no new image found          12  image could not be loaded

Examples:
  # Apply a random wallpaper
  vencordbg apply

  # Show what would change without touching any file
  vencordbg apply --dry-run

  # Use a specific image
  vencordbg apply --image ~/Pictures/sunset.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runApply(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show the changes without writing any file")
	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "use this image instead of a random one")

	return cmd
}

// applyRun holds the state of one apply invocation.
type applyRun struct {
	app      *app
	opts     *applyOptions
	session  *runlog.Session
	log      hclog.Logger
	loc      *i18n.Localizer
	prompter prompt.Prompter

	cfg     *config.Config
	cfgPath string
}

func (a *app) runApply(ctx context.Context, opts *applyOptions) error {
	session := runlog.New(a.stdout, a.stderr, a.level())
	loc, err := i18n.Load(i18n.DefaultLanguage, a.langDir)
	if err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	r := &applyRun{
		app:      a,
		opts:     opts,
		session:  session,
		log:      session.Logger(),
		loc:      loc,
		prompter: a.newPrompter(a.noInput),
	}

	code, err := r.run(ctx)
	return r.finish(code, err)
}

// say writes a user-facing message. Messages are never used as format strings.
func (r *applyRun) say(msg string) {
	r.session.Printf("%s", msg)
}

func (r *applyRun) run(ctx context.Context) (int, error) {
	r.say(version.String())

	if code, err := r.loadConfig(); err != nil {
		return code, err
	}
	if code, err := r.selectLanguage(); err != nil {
		return code, err
	}
	if code, err := r.ensureDirectories(); err != nil {
		return code, err
	}
	if code, err := r.setupAutostart(); err != nil {
		return code, err
	}
	if code, err := r.firstRunPause(); err != nil {
		return code, err
	}

	return r.applyWallpaper(ctx)
}

func (r *applyRun) loadConfig() (int, error) {
	cfg, path, found, err := r.app.loadConfig()
	if err != nil {
		return ExitFailure, err
	}
	if found {
		r.log.Debug("loaded configuration", "path", path)
	} else {
		r.say(r.loc.T("config.notfound"))
	}

	r.cfg = cfg
	r.cfgPath = path
	return ExitOK, nil
}

func (r *applyRun) selectLanguage() (int, error) {
	cfg := r.cfg

	if !cfg.LanguageSet {
		available := i18n.Available(r.app.langDir)
		detected := i18n.Detect(available)

		code, err := r.prompter.SelectLanguage(r.loc.T("language.prompt"), available, detected)
		switch {
		case err == nil:
			cfg.Language = code
			cfg.LanguageSet = true
		case errors.Is(err, prompt.ErrNotInteractive):
			r.log.Debug("using detected language", "language", detected)
			cfg.Language = detected
		default:
			return ExitFailure, err
		}
	}

	loc, err := i18n.Load(cfg.Language, r.app.langDir)
	if err != nil {
		return ExitFailure, err
	}
	r.loc = loc
	return ExitOK, nil
}

func (r *applyRun) ensureDirectories() (int, error) {
	cfg := r.cfg

	if !isDir(cfg.SourceDirectory) {
		r.say(r.loc.T("source.prompt"))
		if cfg.SourceDirectory != "" {
			r.say(r.loc.Tf("source.current", cfg.SourceDirectory))
		}

		dir, err := r.askDirectory("source.input", "source.notexist", cfg.SourceDirectory, isDir)
		if err != nil {
			return ExitSourceInvalid, err
		}
		if dir == "" {
			return ExitSourceInvalid, errors.New("no wallpaper folder given")
		}
		cfg.SourceDirectory = dir
	}

	if !discord.IsVencordDir(cfg.VencordDirectory) {
		if dir, ok := r.app.vencordDir(); ok {
			r.say(r.loc.Tf("vencord.found", dir))
			cfg.VencordDirectory = dir
			return ExitOK, nil
		}

		r.say(r.loc.T("vencord.notfound"))
		r.say(r.loc.T("vencord.instruction"))

		dir, err := r.askDirectory("vencord.prompt", "vencord.path.notexist", cfg.VencordDirectory, discord.IsVencordDir)
		if err != nil {
			return ExitVencordInvalid, err
		}
		if dir == "" {
			return ExitVencordInvalid, errors.New("no Vencord folder given")
		}
		cfg.VencordDirectory = dir
	} else {
		r.log.Debug("using configured Vencord folder", "path", cfg.VencordDirectory)
	}

	return ExitOK, nil
}

// askDirectory prompts for a directory accepted by valid. An empty answer or
// "cancel" returns "".
func (r *applyRun) askDirectory(titleKey, notExistKey, current string, valid func(string) bool) (string, error) {
	cancelled := func(s string) bool {
		return s == "" || strings.EqualFold(s, "cancel")
	}

	dir, err := r.prompter.Directory(r.loc.T(titleKey), r.loc.T("source.cancel.info"), current, func(s string) error {
		if cancelled(s) || valid(s) {
			return nil
		}
		return errors.New(r.loc.T(notExistKey))
	})
	if err != nil {
		return "", err
	}
	if cancelled(dir) {
		return "", nil
	}
	return dir, nil
}

func (r *applyRun) setupAutostart() (int, error) {
	cfg := r.cfg

	if !cfg.AutoRunSet {
		answer, err := r.prompter.Confirm(r.loc.T("autorun.ask"), true)
		switch {
		case err == nil:
			cfg.AutoRun = answer
			if code, err := r.registerAutostart(); err != nil {
				return code, err
			}
			cfg.AutoRunSet = true
		case errors.Is(err, prompt.ErrNotInteractive):
			r.log.Debug("autostart not configured, no terminal to ask")
		default:
			return ExitFailure, err
		}
	}

	if err := r.saveConfig(); err != nil {
		return ExitConfigSave, err
	}
	return ExitOK, nil
}

func (r *applyRun) registerAutostart() (int, error) {
	if !r.cfg.AutoRun || r.opts.dryRun {
		return ExitOK, nil
	}

	command, err := r.app.loginItems.Command()
	if err != nil {
		return ExitAutostart, err
	}

	if err := r.app.loginItems.Register(autostart.DefaultName, command); err != nil {
		if errors.Is(err, autostart.ErrUnsupported) {
			r.say(r.loc.Tf("autorun.warn", err))
			return ExitOK, nil
		}
		return ExitAutostart, err
	}

	r.say(r.loc.T("autorun.registered") + " -> " + command)
	return ExitOK, nil
}

func (r *applyRun) firstRunPause() (int, error) {
	if r.cfg.HasRunBefore {
		return ExitOK, nil
	}

	if err := r.prompter.Pause(r.loc.T("first.run.pause")); err != nil {
		return ExitFailure, err
	}

	r.cfg.HasRunBefore = true
	if err := r.saveConfig(); err != nil {
		r.log.Warn("failed to save configuration", "error", err)
	}
	return ExitOK, nil
}

func (r *applyRun) saveConfig() error {
	if r.opts.dryRun {
		return nil
	}
	if err := config.Save(r.cfg, r.cfgPath); err != nil {
		return err
	}
	r.log.Debug(r.loc.Tf("config.saved", r.cfgPath))
	return nil
}

func (r *applyRun) applyWallpaper(ctx context.Context) (int, error) {
	cfg := r.cfg
	assetDir := cfg.AssetDirPath()
	themePath := cfg.ThemePath()

	if !r.opts.dryRun {
		if err := os.MkdirAll(assetDir, 0o755); err != nil { // #nosec G301 - Theme asset folder needs standard permissions
			return ExitCopy, fmt.Errorf("failed to create asset folder: %w", err)
		}
	}

	if _, err := os.Stat(themePath); errors.Is(err, fs.ErrNotExist) {
		if r.opts.dryRun {
			return ExitThemeRead, err
		}
		r.say(r.loc.T("theme.download.start"))
		if err := r.app.fetchTheme(ctx, cfg.ThemeURL, themePath); err != nil {
			return ExitThemeDownload, err
		}
		r.say(r.loc.T("theme.downloaded"))
	}

	original, err := os.ReadFile(themePath) // #nosec G304 - Theme inside the configured Vencord folder
	if err != nil {
		return ExitThemeRead, err
	}

	patcher := theme.NewPatcherForAssetDir(cfg.AssetDir)
	oldName, oldPath := currentAsset(assetDir, patcher, string(original))
	shown := oldName
	if shown == "" {
		shown = "<none>"
	}
	r.say(r.loc.Tf("searching.random", shown))

	newPath, code, err := r.pickImage(oldName)
	if err != nil {
		return code, err
	}
	newName := filepath.Base(newPath)
	r.say(r.loc.Tf("random.found", newPath))

	if err := security.ValidateAssetName(newName); err != nil {
		return ExitCopy, err
	}

	img, err := r.app.images.Load(newPath)
	if err != nil {
		return ExitImageLoad, err
	}
	result := colour.NewSampler().Sample(img)
	r.log.Debug("sampled image",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
		"hsl", result.HSL.String(),
		"score", result.Score,
		"visited", result.Visited,
		"skipped", result.Skipped)

	if !r.opts.dryRun {
		if err := image.CopyFile(newPath, filepath.Join(assetDir, newName)); err != nil {
			return ExitCopy, err
		}
	}
	r.say(r.loc.T("copied.update.theme"))

	accent := r.accentFor(result)

	doc := theme.Parse(string(original))
	r.say(r.loc.T("vibrant.color.old"))
	r.printAccentLines(doc)

	patcher.ApplyDocument(doc, theme.Patch{
		Accent:   accent,
		OldAsset: oldName,
		NewAsset: newName,
	})

	r.say(r.loc.T("vibrant.color.new"))
	r.printAccentLines(doc)

	if r.opts.dryRun {
		r.say(r.loc.T("dry.run"))
		return ExitOK, nil
	}

	if err := writeTheme(themePath, original, []byte(doc.String()), r.log); err != nil {
		return ExitThemeWrite, err
	}

	if oldPath != "" && filepath.Base(oldPath) != newName {
		if err := os.Remove(oldPath); err != nil {
			r.say(r.loc.Tf("delete.old.warn", err))
		}
	}

	r.hintReload()
	r.say(r.loc.T("done"))
	return ExitOK, nil
}

// currentAsset finds the wallpaper in use: the first file in the asset
// folder, or the file referenced by the theme's background directive.
// path is empty when the file is not present locally.
func currentAsset(assetDir string, patcher *theme.Patcher, text string) (name, path string) {
	if entries, err := os.ReadDir(assetDir); err == nil {
		for _, e := range entries {
			if e.Type().IsRegular() {
				return e.Name(), filepath.Join(assetDir, e.Name())
			}
		}
	}

	if name, ok := patcher.CurrentAsset(text); ok {
		return name, ""
	}
	return "", ""
}

func (r *applyRun) pickImage(exclude string) (string, int, error) {
	if r.opts.image != "" {
		path := prompt.CleanPath(r.opts.image)
		if !image.IsImageFile(path) {
			return "", ExitNoNewImage, fmt.Errorf("unsupported image type: %s", path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", ExitNoNewImage, err
		}
		return path, ExitOK, nil
	}

	paths, err := image.ScanDirectoryForImages(r.cfg.SourceDirectory, r.cfg.UseSubfolders)
	if err != nil {
		return "", ExitNoNewImage, err
	}
	r.log.Debug("found images", "count", len(paths), "subfolders", r.cfg.UseSubfolders)

	path, err := image.SelectRandomImage(r.app.rng, paths, exclude)
	if err != nil {
		return "", ExitNoNewImage, err
	}
	return path, ExitOK, nil
}

// accentFor turns a sample into the accent to write, or nil to keep the
// theme's current accent.
func (r *applyRun) accentFor(result colour.Result) *colour.Accent {
	if result.Degenerate() {
		r.say(r.loc.T("neutral.color"))
		if !r.cfg.UseNeutralFallback() {
			r.say(r.loc.T("accent.unchanged"))
			return nil
		}
	}

	accent := colour.NewAccent(result.HSL, r.cfg.AccentColorBright)
	if accent.Inverted {
		r.say(r.loc.T("bright.accent.used"))
	}
	return &accent
}

func (r *applyRun) printAccentLines(doc *theme.Document) {
	for _, key := range []theme.Key{
		theme.KeyAccentHue,
		theme.KeyAccentSaturation,
		theme.KeyAccentLightness,
		theme.KeyAccentTextColor,
	} {
		if line, ok := doc.Get(key); ok {
			r.say(line)
		}
	}
}

func (r *applyRun) hintReload() {
	names, err := r.app.clients()
	if err != nil {
		r.log.Debug("could not list running clients", "error", err)
		return
	}
	if len(names) > 0 {
		r.say(r.loc.Tf("discord.running", strings.Join(names, ", ")))
	}
}

// finish reports the outcome, writes the run log and converts failures into
// an *ExitError.
func (r *applyRun) finish(code int, err error) error {
	switch {
	case code >= ExitSourceInvalid:
		if code > ExitSourceInvalid {
			r.say(r.loc.T("program.exit.error.occured"))
		}
		msg := exitMessages[code]
		text := r.loc.T(msg.key)
		if msg.detail && err != nil {
			text = r.loc.Tf(msg.key, err)
		}
		r.say(fmt.Sprintf("-->%s\n-->exit-code %d", r.loc.Tf("error.details", text), code))
		if err != nil {
			r.log.Debug("run failed", "error", err)
		}
	case err != nil:
		r.say(r.loc.Tf("error.details", err))
	}

	r.writeLog(code)

	if code == ExitOK {
		return nil
	}
	if pauseErr := r.prompter.Pause(r.loc.T("program.exit.pause")); pauseErr != nil {
		r.log.Debug("exit pause failed", "error", pauseErr)
	}
	return &ExitError{Code: code, Err: err}
}

func (r *applyRun) writeLog(code int) {
	path, err := r.session.Flush(r.app.logDir, code)
	if err != nil {
		r.log.Warn("failed to write run log", "error", err)
		return
	}

	keep := config.DefaultKeepLogs
	if r.cfg != nil {
		keep = r.cfg.KeepLogs
	}
	if res, err := runlog.Prune(r.app.logDir, keep); err != nil {
		r.log.Warn("failed to prune run logs", "error", err)
	} else if len(res.Compressed)+len(res.Removed) > 0 {
		r.log.Debug("pruned run logs", "compressed", len(res.Compressed), "removed", len(res.Removed))
	}

	if !r.app.quiet {
		fmt.Fprintln(r.app.stdout, r.loc.Tf("log.written", path))
	}
}

func isDir(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
