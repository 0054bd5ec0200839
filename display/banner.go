package display

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/teranos/crunch/version"
)

// Banner prints the crunch logo and version, shown before interactive runs
func Banner(w io.Writer) {
	logo, err := pterm.DefaultBigText.
		WithLetters(putils.LettersFromStringWithStyle("crunch", pterm.NewStyle(pterm.FgLightGreen))).
		Srender()
	if err != nil {
		logo = "crunch\n"
	}
	pterm.Fprint(w, logo)
	pterm.Fprintln(w, pterm.Gray("wordlist generator "+version.Get().Short()))
	pterm.Fprintln(w)
}
