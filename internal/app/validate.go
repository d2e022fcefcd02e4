package app

import (
	"github.com/spf13/cobra"
)

func NewValidateCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate one or more character record files",
		Long: `Validate checks that each file holds a version 1 character record. Every problem
found in a record is reported. The command fails if any record is invalid.`,
		Args: cobra.MinimumNArgs(1),
		Example: `
  wsr validate ines.json
  wsr validate records/*.json --output json`,
	}

	outputVal := formatValue(FormatText)
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return mgr.ValidateRecords(cmd.Context(), args, string(outputVal), useColour(cmd))
	}

	return cmd
}
