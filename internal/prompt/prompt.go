// Package prompt asks the user for the settings needed on first run.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/jmylchreest/vencordbg/internal/i18n"
)

var (
	// ErrNotInteractive is returned when input is required but no terminal is attached.
	ErrNotInteractive = errors.New("input required but not running interactively")

	// ErrAborted is returned when the user cancels a prompt.
	ErrAborted = errors.New("prompt aborted")
)

// Prompter asks the user questions.
type Prompter interface {
	// SelectLanguage offers langs and returns the chosen code.
	SelectLanguage(title string, langs []i18n.Language, current string) (string, error)
	// Directory asks for a directory path, re-asking until validate accepts it.
	Directory(title, description, initial string, validate func(string) error) (string, error)
	// Confirm asks a yes/no question.
	Confirm(title string, def bool) (bool, error)
	// Pause shows message and waits for acknowledgement.
	Pause(message string) error
}

// IsInteractive reports whether stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// New returns an Interactive prompter when a terminal is attached and noInput
// is false, otherwise a NonInteractive one.
func New(noInput bool) Prompter {
	if noInput || !IsInteractive() {
		return NonInteractive{}
	}
	return &Interactive{In: os.Stdin, Out: os.Stdout}
}

// Interactive prompts on a terminal using huh forms.
type Interactive struct {
	In  io.Reader
	Out io.Writer

	// Accessible switches to line-based prompts for screen readers.
	Accessible bool
}

func (p *Interactive) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(huh.ThemeCharm()).
		WithAccessible(p.Accessible).
		WithShowHelp(false)
	if p.In != nil {
		form = form.WithInput(p.In)
	}
	if p.Out != nil {
		form = form.WithOutput(p.Out)
	}

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// SelectLanguage implements Prompter.
func (p *Interactive) SelectLanguage(title string, langs []i18n.Language, current string) (string, error) {
	options := make([]huh.Option[string], 0, len(langs))
	for _, l := range langs {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", l.Name, l.Code), l.Code))
	}

	choice := current
	field := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&choice)
	if err := p.run(field); err != nil {
		return "", err
	}
	return choice, nil
}

// Directory implements Prompter.
func (p *Interactive) Directory(title, description, initial string, validate func(string) error) (string, error) {
	dir := initial
	field := huh.NewInput().
		Title(title).
		Description(description).
		Value(&dir).
		Validate(func(s string) error {
			if validate == nil {
				return nil
			}
			return validate(CleanPath(s))
		})
	if err := p.run(field); err != nil {
		return "", err
	}
	return CleanPath(dir), nil
}

// Confirm implements Prompter.
func (p *Interactive) Confirm(title string, def bool) (bool, error) {
	answer := def
	field := huh.NewConfirm().
		Title(title).
		Value(&answer)
	if err := p.run(field); err != nil {
		return false, err
	}
	return answer, nil
}

// Pause implements Prompter.
func (p *Interactive) Pause(message string) error {
	return p.run(huh.NewNote().Title(message).Next(true))
}

// NonInteractive fails every prompt with ErrNotInteractive.
type NonInteractive struct{}

// SelectLanguage implements Prompter.
func (NonInteractive) SelectLanguage(string, []i18n.Language, string) (string, error) {
	return "", ErrNotInteractive
}

// Directory implements Prompter.
func (NonInteractive) Directory(string, string, string, func(string) error) (string, error) {
	return "", ErrNotInteractive
}

// Confirm implements Prompter.
func (NonInteractive) Confirm(string, bool) (bool, error) {
	return false, ErrNotInteractive
}

// Pause implements Prompter. There is nobody to wait for, so it returns nil.
func (NonInteractive) Pause(string) error {
	return nil
}
