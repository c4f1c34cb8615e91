package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/vencordbg/internal/colour"
)

const (
	// DefaultAssetURLPrefix is the virtual path Vencord serves theme assets from.
	DefaultAssetURLPrefix = "vencord:///themes/Hintergrundbild/"

	// TextColorDark is the accent text colour used on light accents.
	TextColorDark = "hsl(0,0%,0%)"

	// TextColorLight is the accent text colour used on dark accents.
	TextColorLight = "hsl(0,0%,100%)"

	indent = "    "
)

// Patch describes one theme update.
type Patch struct {
	// Accent holds the new accent values. When nil the accent directives are
	// left untouched.
	Accent *colour.Accent

	// OldAsset is the background filename currently referenced, if known.
	OldAsset string

	// NewAsset is the background filename to reference.
	NewAsset string
}

// Patcher applies patches to theme text.
type Patcher struct {
	// AssetURLPrefix is prepended to the asset filename in the background URL.
	AssetURLPrefix string
}

// NewPatcher creates a Patcher using the default asset URL prefix.
func NewPatcher() *Patcher {
	return &Patcher{AssetURLPrefix: DefaultAssetURLPrefix}
}

// NewPatcherForAssetDir creates a Patcher for assets stored in the named
// folder below the Vencord themes directory.
func NewPatcherForAssetDir(dir string) *Patcher {
	if dir == "" {
		return NewPatcher()
	}
	return &Patcher{AssetURLPrefix: "vencord:///themes/" + strings.Trim(dir, "/") + "/"}
}

// Apply returns text with the patch applied. It never fails: directives that
// are absent are skipped, except the background which is inserted at the top.
func (p *Patcher) Apply(text string, patch Patch) string {
	doc := Parse(text)
	p.ApplyDocument(doc, patch)
	return doc.String()
}

// ApplyDocument applies the patch to an already parsed document.
func (p *Patcher) ApplyDocument(doc *Document, patch Patch) {
	// The filename substitution runs first so it cannot touch the freshly
	// written background line.
	if patch.OldAsset != "" {
		doc.ReplaceAll(patch.OldAsset, patch.NewAsset)
	}

	bg := p.BackgroundLine(patch.NewAsset)
	if !doc.Set(KeyBackground, bg) {
		doc.Prepend(bg)
	}

	if patch.Accent == nil {
		return
	}

	for _, line := range AccentLines(*patch.Accent) {
		doc.Set(line.Key, line.Raw)
	}
}

// TextColor returns the accent text colour that stays readable on a.
func TextColor(a colour.Accent) string {
	if a.DarkText() {
		return TextColorDark
	}
	return TextColorLight
}

// AccentLines renders the accent directives for a, in document order.
func AccentLines(a colour.Accent) []Line {
	return []Line{
		{Key: KeyAccentHue, Raw: directive(KeyAccentHue, fmt.Sprintf("%d", a.Hue))},
		{Key: KeyAccentSaturation, Raw: directive(KeyAccentSaturation, fmt.Sprintf("%d%%", a.Saturation))},
		{Key: KeyAccentLightness, Raw: directive(KeyAccentLightness, fmt.Sprintf("%d%%", a.Lightness))},
		{Key: KeyAccentTextColor, Raw: directive(KeyAccentTextColor, TextColor(a))},
	}
}

// BackgroundLine builds the background directive for filename.
func (p *Patcher) BackgroundLine(filename string) string {
	return directive(KeyBackground, fmt.Sprintf("url(\"%s%s\")", p.prefix(), filename))
}

// CurrentAsset returns the filename referenced by the background directive,
// if it points into the asset folder.
func (p *Patcher) CurrentAsset(text string) (string, bool) {
	line, ok := Parse(text).Get(KeyBackground)
	if !ok {
		return "", false
	}

	re := regexp.MustCompile(regexp.QuoteMeta(p.prefix()) + `([^")]+)`)
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (p *Patcher) prefix() string {
	if p.AssetURLPrefix == "" {
		return DefaultAssetURLPrefix
	}
	return p.AssetURLPrefix
}

// directive formats a property line in the theme's conventional layout.
func directive(key Key, value string) string {
	return indent + key.Marker() + " " + value + ";"
}
