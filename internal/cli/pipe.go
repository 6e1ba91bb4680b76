package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsPipedOutput returns true if stdout is being piped (not a TTY).
func IsPipedOutput() bool {
	return !isatty.IsTerminal(os.Stdout.Fd())
}
