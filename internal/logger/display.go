package logger

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"martianoff/tsbind/internal/diag"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
)

// PrintDiagnostic prints one diagnostic as a warning banner followed by its
// location and message.
func PrintDiagnostic(w io.Writer, d diag.Diagnostic) {
	fmt.Fprint(w, WarnStyleBG.Sprint(" "+d.Kind.String()+" "))
	if loc := d.Location(); loc != "" {
		fmt.Fprint(w, " ", InfoColorFG.Sprint(loc))
	}
	fmt.Fprintln(w, " "+WarnColorFG.Sprint(d.Message))
}

// PrintError prints a fatal error under tag.
func PrintError(w io.Writer, tag string, err error) {
	fmt.Fprint(w, ErrorStyleBG.Sprint(" "+tag+" "))
	fmt.Fprintln(w, " "+ErrorColorFG.Sprint(err.Error()))
}

// PrintSummary prints the closing line of a build.
func PrintSummary(w io.Writer, units, failed, warnings int) {
	fmt.Fprintln(w)
	if failed == 0 {
		fmt.Fprint(w, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(w, ErrorColorFG.Sprint("Oh no! "))
	}
	fmt.Fprintf(w, "(%s, %s, %s)\n",
		count(units, "unit", InfoColorFG),
		count(failed, "failure", ErrorColorFG),
		count(warnings, "warning", WarnColorFG))
}

func count(n int, noun string, color pterm.Color) string {
	if n != 1 {
		noun += "s"
	}
	if n == 0 {
		color = SuccessColorFG
	}
	return color.Sprint(n) + " " + noun
}
