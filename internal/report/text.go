// Package report writes fixture run reports and record validation results.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/andyballingall/whisperspace-records/internal/fixture"
)

// TextReporter implements fixture.Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// colourise returns a string which will render with the given colour
// if colourisation is enabled.
func colourise(enabled bool, c, s string) string {
	if !enabled {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) cs(c, s string) string {
	return colourise(tr.UseColour, c, s)
}

func (tr *TextReporter) Write(w io.Writer, r *fixture.Report) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "WSR FIXTURE REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	if tr.Verbose {
		for _, spec := range r.Passed {
			fmt.Fprintf(w, "%s %s (%s)\n",
				tr.cs(colGreen, "✓"),
				tr.cs(colGrey, spec.Fixture.Path),
				tr.cs(colGreen, spec.ResultLabel()))
		}
	}

	for _, spec := range r.Failed {
		fmt.Fprintf(w, "%s %s (%s):\n",
			tr.cs(colRed, "✗"),
			tr.cs(colGrey, spec.Fixture.Path),
			tr.cs(colRed, spec.ResultLabel()))
		fmt.Fprintf(w, "    %v\n", spec.Err)
	}

	fmt.Fprintf(w, "%s\n", divider)
	summaryLabel := tr.cs(colBoldWhite, "Fixture summary: ")
	summaryStats := fmt.Sprintf("%d passed, %d failed", len(r.Passed), len(r.Failed))
	statsColor := colBoldGreen
	if len(r.Failed) > 0 {
		statsColor = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", summaryLabel, tr.cs(statsColor, summaryStats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}
