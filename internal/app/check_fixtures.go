package app

import (
	"github.com/spf13/cobra"
)

func NewCheckFixturesCmd(mgr Manager) *cobra.Command {
	var verbose bool
	var continueOnError bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "check-fixtures [dir]",
		Short: "Check that every fixture gets the verdict its name declares",
		Long: `Fixtures are record documents named *.valid.json or *.invalid.json. Each is
checked by the record validator and by the published JSON Schema. A .valid.json
fixture must be accepted and a .invalid.json fixture must be rejected.

The directory defaults to the configured fixturesDir.`,
		Args: cobra.MaximumNArgs(1),
		Example: `
  wsr check-fixtures
  wsr check-fixtures testdata/records --verbose
  wsr check-fixtures --watch`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show passing fixtures too")
	outputVal := formatValue(FormatText)
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")
	cmd.Flags().BoolVarP(&continueOnError, "continue-on-error", "C", false,
		"Continue checking even if a fixture fails (default is to stop on first failure)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Watch for changes and recheck fixtures")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		dir := mgr.Config().FixturesDir
		if len(args) > 0 {
			dir = args[0]
		}

		if watch {
			return mgr.WatchFixtures(cmd.Context(), dir, verbose, string(outputVal),
				useColour(cmd), continueOnError, nil)
		}
		return mgr.CheckFixtures(cmd.Context(), dir, verbose, string(outputVal),
			useColour(cmd), continueOnError)
	}

	return cmd
}
