// Package theme rewrites the accent and background directives of a Vencord
// theme stylesheet.
//
// A theme is handled as an ordered list of lines. Lines carrying one of the
// recognised custom properties are tagged with their Key; every other line is
// kept byte for byte. Directives are always replaced as whole lines, which
// keeps repeated patching idempotent.
package theme

import (
	"strings"
)

// Key identifies a recognised directive.
type Key string

const (
	// KeyNone marks a line that is not a recognised directive.
	KeyNone Key = ""

	// KeyBackground references the active background image.
	KeyBackground Key = "--app-bg"

	// KeyAccentHue is the accent hue in degrees.
	KeyAccentHue Key = "--accent-hue"

	// KeyAccentSaturation is the accent saturation percentage.
	KeyAccentSaturation Key = "--accent-saturation"

	// KeyAccentLightness is the accent lightness percentage.
	KeyAccentLightness Key = "--accent-lightness"

	// KeyAccentTextColor is the text colour drawn on the accent.
	KeyAccentTextColor Key = "--accent-text-color"
)

// Keys returns every recognised directive key in document order of precedence.
func Keys() []Key {
	return []Key{
		KeyBackground,
		KeyAccentHue,
		KeyAccentSaturation,
		KeyAccentLightness,
		KeyAccentTextColor,
	}
}

// Marker is the literal substring that identifies the key on a line.
func (k Key) Marker() string {
	return string(k) + ":"
}

// Line is a single line of a theme document.
type Line struct {
	// Raw is the line text without its trailing newline. A carriage return
	// from CRLF files stays part of Raw.
	Raw string

	// Key is the directive carried by the line, or KeyNone.
	Key Key
}

// Document is a parsed theme.
type Document struct {
	lines []Line
}

// Parse splits text into lines and tags recognised directives.
func Parse(text string) *Document {
	raw := strings.Split(text, "\n")
	doc := &Document{lines: make([]Line, 0, len(raw))}
	for _, r := range raw {
		doc.lines = append(doc.lines, Line{Raw: r, Key: classify(r)})
	}
	return doc
}

// classify returns the key whose marker the line contains.
func classify(raw string) Key {
	for _, k := range Keys() {
		if strings.Contains(raw, k.Marker()) {
			return k
		}
	}
	return KeyNone
}

// String joins the document back into text.
func (d *Document) String() string {
	var b strings.Builder
	for i, l := range d.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Raw)
	}
	return b.String()
}

// Find returns the index of the first line carrying key.
func (d *Document) Find(key Key) (int, bool) {
	for i, l := range d.lines {
		if l.Key == key {
			return i, true
		}
	}
	return -1, false
}

// Get returns the first line carrying key.
func (d *Document) Get(key Key) (string, bool) {
	i, ok := d.Find(key)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(d.lines[i].Raw, "\r"), true
}

// Set replaces the first line carrying key with raw and reports whether the
// key was present. The original line ending is preserved.
func (d *Document) Set(key Key, raw string) bool {
	i, ok := d.Find(key)
	if !ok {
		return false
	}
	if strings.HasSuffix(d.lines[i].Raw, "\r") {
		raw += "\r"
	}
	d.lines[i] = Line{Raw: raw, Key: classify(raw)}
	return true
}

// Prepend inserts raw as the first line.
func (d *Document) Prepend(raw string) {
	if d.crlf() {
		raw += "\r"
	}
	d.lines = append([]Line{{Raw: raw, Key: classify(raw)}}, d.lines...)
}

// ReplaceAll substitutes every literal occurrence of old with new across the
// whole text, then re-tags the lines. When new contains old, text that
// already reads new is left alone, so replacing twice equals replacing once.
func (d *Document) ReplaceAll(old, new string) {
	if old == "" || old == new {
		return
	}

	text := d.String()
	if !strings.Contains(new, old) {
		*d = *Parse(strings.ReplaceAll(text, old, new))
		return
	}

	parts := strings.Split(text, new)
	for i, part := range parts {
		parts[i] = strings.ReplaceAll(part, old, new)
	}
	*d = *Parse(strings.Join(parts, new))
}

// Directives returns the first line of every recognised key that is present,
// keyed by directive.
func (d *Document) Directives() map[Key]string {
	out := make(map[Key]string)
	for _, k := range Keys() {
		if raw, ok := d.Get(k); ok {
			out[k] = raw
		}
	}
	return out
}

// crlf reports whether the document uses CRLF line endings.
func (d *Document) crlf() bool {
	return len(d.lines) > 1 && strings.HasSuffix(d.lines[0].Raw, "\r")
}
