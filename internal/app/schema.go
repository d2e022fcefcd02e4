package app

import (
	"github.com/spf13/cobra"
)

func NewSchemaCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for version 1 character records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.WriteSchema(cmd.OutOrStdout())
		},
	}
}
