package cli

import (
	"os"

	"golang.org/x/term"
)

func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
