package display

import (
	"fmt"
	"os"

	"github.com/backmassage/framegrab/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `  __                                          _
 / _|_ __ __ _ _ __ ___   ___  __ _ _ __ __ _| |__
| |_| '__/ _`+"`"+` | '_ `+"`"+` _ \ / _ \/ _`+"`"+` | '__/ _`+"`"+` | '_ \
|  _| | | (_| | | | | | |  __/ (_| | | | (_| | |_) |
|_| |_|  \__,_|_| |_| |_|\___|\__, |_|  \__,_|_.__/
                              |___/
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
