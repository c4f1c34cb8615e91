package cli

import (
	"fmt"
)

// Exit codes reported by apply.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitSourceInvalid  = 3
	ExitVencordInvalid = 4
	ExitThemeDownload  = 5
	ExitThemeRead      = 6
	ExitNoNewImage     = 7
	ExitCopy           = 8
	ExitThemeWrite     = 9
	ExitAutostart      = 10
	ExitConfigSave     = 11
	ExitImageLoad      = 12
)

// ExitError carries the process exit code for a failed run. Its message has
// already been reported to the user when it reaches main.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitMessage names the message describing an exit code and whether it takes
// the underlying error as an argument.
type exitMessage struct {
	key    string
	detail bool
}

var exitMessages = map[int]exitMessage{
	ExitSourceInvalid:  {key: "source.invalid"},
	ExitVencordInvalid: {key: "vencord.invalid"},
	ExitThemeDownload:  {key: "theme.download.error", detail: true},
	ExitThemeRead:      {key: "theme.read.error", detail: true},
	ExitNoNewImage:     {key: "no.new.image"},
	ExitCopy:           {key: "copy.error", detail: true},
	ExitThemeWrite:     {key: "writing.theme.error", detail: true},
	ExitAutostart:      {key: "autorun.error", detail: true},
	ExitConfigSave:     {key: "config.save.error", detail: true},
	ExitImageLoad:      {key: "image.load.error", detail: true},
}
