// vencordbg - Random Discord wallpapers for Vencord themes
//
// vencordbg installs a random wallpaper as the background of a Vencord theme
// and matches the theme's accent colour to the image.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmylchreest/vencordbg/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
