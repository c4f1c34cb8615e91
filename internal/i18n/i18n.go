// Package i18n looks up localized user-facing messages.
//
// Messages live in flat JSON files keyed by message ID. English and German
// are embedded; files in an override directory take precedence and may add
// further languages.
package i18n

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

//go:embed lang/*.json
var embedded embed.FS

const (
	// DefaultLanguage is used when nothing else matches.
	DefaultLanguage = "en"

	// NameKey holds the display name of a language inside its file.
	NameKey = "language.name"
)

// Language describes an available translation.
type Language struct {
	Code string
	Name string
}

// Localizer resolves message IDs for one language.
type Localizer struct {
	code     string
	messages map[string]string
	fallback map[string]string
}

// Load creates a Localizer for code. Files in overrideDir are preferred over
// the embedded ones. Unknown languages fall back to English.
func Load(code, overrideDir string) (*Localizer, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = DefaultLanguage
	}

	fallback, err := readLanguage(DefaultLanguage, overrideDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load default language: %w", err)
	}

	l := &Localizer{code: code, fallback: fallback}
	if code == DefaultLanguage {
		l.messages = fallback
		return l, nil
	}

	messages, err := readLanguage(code, overrideDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		l.code = DefaultLanguage
		messages = fallback
	}
	l.messages = messages

	return l, nil
}

// Code returns the language actually in use.
func (l *Localizer) Code() string {
	return l.code
}

// T returns the message for key, or the key itself if no translation exists.
func (l *Localizer) T(key string) string {
	if l == nil {
		return key
	}
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	if msg, ok := l.fallback[key]; ok {
		return msg
	}
	return key
}

// placeholder matches .NET style "{0}" placeholders found in older language files.
var placeholder = regexp.MustCompile(`\{(\d)\}`)

// Tf formats the message for key with args.
func (l *Localizer) Tf(key string, args ...any) string {
	msg := placeholder.ReplaceAllStringFunc(l.T(key), func(m string) string {
		return fmt.Sprintf("%%[%d]v", m[1]-'0'+1)
	})
	return fmt.Sprintf(msg, args...)
}

// Available lists the languages found in the embedded set and overrideDir.
func Available(overrideDir string) []Language {
	codes := make(map[string]struct{})

	if entries, err := fs.ReadDir(embedded, "lang"); err == nil {
		for _, e := range entries {
			codes[strings.TrimSuffix(e.Name(), ".json")] = struct{}{}
		}
	}
	if overrideDir != "" {
		if matches, err := filepath.Glob(filepath.Join(overrideDir, "*.json")); err == nil {
			for _, m := range matches {
				codes[strings.ToLower(strings.TrimSuffix(filepath.Base(m), ".json"))] = struct{}{}
			}
		}
	}

	langs := make([]Language, 0, len(codes))
	for code := range codes {
		name := code
		if messages, err := readLanguage(code, overrideDir); err == nil && messages[NameKey] != "" {
			name = messages[NameKey]
		}
		langs = append(langs, Language{Code: code, Name: name})
	}

	sort.Slice(langs, func(i, j int) bool {
		return langs[i].Code < langs[j].Code
	})
	return langs
}

// Detect picks the available language that best matches the user's locale
// environment ($LC_ALL, $LC_MESSAGES, $LANG).
func Detect(available []Language) string {
	if len(available) == 0 {
		return DefaultLanguage
	}

	var locale string
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(env); v != "" {
			locale = v
			break
		}
	}

	return Match(locale, available)
}

// Match returns the code in available that best matches locale, which may be
// a POSIX locale such as "de_DE.UTF-8" or a BCP 47 tag.
func Match(locale string, available []Language) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return DefaultLanguage
	}

	tags := make([]language.Tag, 0, len(available))
	for _, l := range available {
		tags = append(tags, language.Make(l.Code))
	}

	_, index, confidence := language.NewMatcher(tags).Match(language.Make(locale))
	if confidence == language.No {
		return DefaultLanguage
	}
	return available[index].Code
}

// readLanguage reads the messages for code, preferring overrideDir.
func readLanguage(code, overrideDir string) (map[string]string, error) {
	var data []byte
	var err error

	if overrideDir != "" {
		data, err = os.ReadFile(filepath.Join(overrideDir, code+".json")) // #nosec G304 - Language files next to the executable
	}
	if overrideDir == "" || err != nil {
		data, err = embedded.ReadFile("lang/" + code + ".json")
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", code, fs.ErrNotExist)
		}
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", code, err)
	}

	messages := make(map[string]string)
	if err := json.Unmarshal([]byte(text), &messages); err != nil {
		return nil, fmt.Errorf("language %q: invalid JSON: %w", code, err)
	}
	return messages, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode converts language file bytes to a string. Files saved by Windows
// editors may be UTF-16 with a BOM or ANSI (Windows-1252).
func decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("invalid UTF-16: %w", err)
		}
		return string(out), nil
	case utf8.Valid(data):
		return string(data), nil
	}

	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("invalid Windows-1252: %w", err)
	}
	return string(out), nil
}
