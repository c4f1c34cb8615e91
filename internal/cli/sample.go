package cli

import (
	"encoding/json"
	"fmt"
	stdimage "image"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/vencordbg/internal/colour"
	"github.com/jmylchreest/vencordbg/internal/image"
	"github.com/jmylchreest/vencordbg/internal/theme"
)

// outputFormat selects how sample prints its result.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatCSS  outputFormat = "css"
)

var outputFormats = []outputFormat{formatText, formatJSON, formatCSS}

var _ pflag.Value = (*outputFormat)(nil)

// String implements pflag.Value.
func (f *outputFormat) String() string {
	return string(*f)
}

// Set implements pflag.Value.
func (f *outputFormat) Set(v string) error {
	for _, known := range outputFormats {
		if strings.EqualFold(v, string(known)) {
			*f = known
			return nil
		}
	}
	names := make([]string, len(outputFormats))
	for i, known := range outputFormats {
		names[i] = string(known)
	}
	return fmt.Errorf("must be one of %s", strings.Join(names, ", "))
}

// Type implements pflag.Value.
func (f *outputFormat) Type() string {
	return "format"
}

type sampleOptions struct {
	format outputFormat
	bright bool
}

func newSampleCmd(a *app) *cobra.Command {
	opts := &sampleOptions{format: formatText}

	cmd := &cobra.Command{
		Use:   "sample <image>",
		Short: "Show the accent colour picked from an image",
		Long: `Sample analyses an image the same way apply does and prints the vibrant
colour it found together with the accent values that would be written to
the theme. No file is changed.

Examples:
  # Show the accent with a colour swatch
  vencordbg sample wallpaper.jpg

  # Print the accent directives for pasting into a theme
  vencordbg sample --format css wallpaper.jpg

  # Machine readable output, inverting dark accents
  vencordbg sample --format json --bright wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd.OutOrStdout(), a.images, args[0], opts)
		},
	}

	cmd.Flags().VarP(&opts.format, "format", "f", "output format (text, json, css)")
	cmd.Flags().BoolVarP(&opts.bright, "bright", "b", false, "invert dark accents like the AccentColorBright setting")

	return cmd
}

// sampleReport is the JSON form of a sample.
type sampleReport struct {
	Image      string      `json:"image"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Vibrant    colour.HSL  `json:"vibrant"`
	Hex        string      `json:"hex"`
	Score      float64     `json:"score"`
	Degenerate bool        `json:"degenerate"`
	Visited    int         `json:"visited"`
	Skipped    int         `json:"skipped"`
	Accent     accentValue `json:"accent"`
}

type accentValue struct {
	colour.Accent
	TextColor string `json:"text_color"`
}

func runSample(out io.Writer, loader image.Loader, path string, opts *sampleOptions) error {
	img, err := loader.Load(path)
	if err != nil {
		return err
	}
	bounds := img.Bounds()

	result := colour.NewSampler().Sample(img)
	accent := colour.NewAccent(result.HSL, opts.bright)

	switch opts.format {
	case formatJSON:
		report := sampleReport{
			Image:      path,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
			Vibrant:    result.HSL,
			Hex:        result.HSL.Hex(),
			Score:      result.Score,
			Degenerate: result.Degenerate(),
			Visited:    result.Visited,
			Skipped:    result.Skipped,
			Accent: accentValue{
				Accent:    accent,
				TextColor: theme.TextColor(accent),
			},
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case formatCSS:
		for _, line := range theme.AccentLines(accent) {
			fmt.Fprintln(out, line.Raw)
		}
		return nil
	}

	fmt.Fprint(out, renderSample(path, bounds.Size(), result, accent))
	return nil
}

// renderSample formats a result for the terminal with colour swatches.
func renderSample(path string, size stdimage.Point, result colour.Result, accent colour.Accent) string {
	swatch := func(c colour.HSL) string {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(c.Hex())).
			Render("      ")
	}

	t := NewTable()
	t.AddRow("Image", path)
	t.AddRow("Size", fmt.Sprintf("%dx%d", size.X, size.Y))
	if result.Degenerate() {
		t.AddRow("Vibrant", "none (no saturated opaque pixel)")
	} else {
		t.AddRow("Vibrant", fmt.Sprintf("%s  %s  %s", swatch(result.HSL), result.HSL.Hex(), result.HSL))
	}
	t.AddRow("Score", fmt.Sprintf("%.4f", result.Score))
	t.AddRow("Pixels", fmt.Sprintf("%d sampled, %d transparent", result.Visited, result.Skipped))

	accentText := accent.String()
	if accent.Inverted {
		accentText += " (inverted)"
	}
	t.AddRow("Accent", fmt.Sprintf("%s  %s", swatch(accent.HSL()), accentText))
	t.AddRow("Text", theme.TextColor(accent))

	return t.Render()
}
