package cliutil

import "github.com/mattn/go-isatty"

// IsTty reports whether fd refers to a terminal.
func IsTty(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
