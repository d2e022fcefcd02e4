package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRollCmd(mgr Manager) *cobra.Command {
	var netDice int
	var modifier int
	var target string

	cmd := &cobra.Command{
		Use:   "roll LABEL",
		Short: "Print the dice expression for a skill check",
		Long: `Roll prints the d12 dice expression for a skill check and publishes it as a
dice:roll event. --net adds advantage (positive) or disadvantage (negative) dice,
up to two either way.`,
		Args: cobra.ExactArgs(1),
		Example: `
  wsr roll Shoot                 # 1d12 # Shoot
  wsr roll Shoot --net 1 --mod 2 # 2d12kh1 # Shoot +2
  wsr roll Hide --net -2         # 3d12kl1 # Hide`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := mgr.Roll(netDice, modifier, args[0], target)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), r.DiceNotation)
			return err
		},
	}

	cmd.Flags().IntVarP(&netDice, "net", "n", 0, "Net advantage dice (-2 to 2)")
	cmd.Flags().IntVarP(&modifier, "mod", "m", 0, "Flat modifier added to the roll")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Who should see the roll")

	return cmd
}
