package app

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/andyballingall/whisperspace-records/internal/calc"
	"github.com/andyballingall/whisperspace-records/internal/record"
)

func NewCalcCmd(mgr Manager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Call the calculation API",
		Long: `Calc sends a request to the calculation API configured by calcApiBase
(or WSR_CALC_API_BASE) and prints the JSON response.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCalcAttackCmd(mgr))
	cmd.AddCommand(newCalcDamageCmd(mgr))
	cmd.AddCommand(newCalcNotationCmd(mgr))

	return cmd
}

func newCalcAttackCmd(mgr Manager) *cobra.Command {
	var req calc.AttackRequest

	cmd := &cobra.Command{
		Use:     "attack",
		Short:   "Resolve an attack roll",
		Args:    cobra.NoArgs,
		Example: `  wsr calc attack --total 14 --dc 8 --damage 4 --label Rifle`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := mgr.CalcAttack(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Float64Var(&req.Total, "total", 0, "Attack roll total")
	cmd.Flags().Float64Var(&req.UseDC, "dc", 0, "Weapon use difficulty")
	cmd.Flags().Float64Var(&req.WeaponDamage, "damage", 0, "Weapon damage")
	cmd.Flags().StringVar(&req.Label, "label", "", "Label for the attack")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("dc")
	_ = cmd.MarkFlagRequired("damage")

	return cmd
}

func newCalcDamageCmd(mgr Manager) *cobra.Command {
	var incoming, protection, stress, stressDelta float64
	var unmitigated bool

	cmd := &cobra.Command{
		Use:     "damage",
		Short:   "Apply incoming damage to armour, wounds and stress",
		Args:    cobra.NoArgs,
		Example: `  wsr calc damage --incoming 5 --protection 2 --stress 1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := calc.DamageRequest{IncomingDamage: incoming, Unmitigated: unmitigated}
			if cmd.Flags().Changed("protection") {
				req.Armour = &record.Armour{Protection: &protection}
			}
			if cmd.Flags().Changed("stress") {
				req.Stress = &record.Stress{Current: &stress}
			}
			if cmd.Flags().Changed("stress-delta") {
				req.StressDelta = &stressDelta
			}

			out, err := mgr.CalcDamage(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().Float64Var(&incoming, "incoming", 0, "Incoming damage")
	cmd.Flags().BoolVar(&unmitigated, "unmitigated", false, "Ignore armour")
	cmd.Flags().Float64Var(&protection, "protection", 0, "Armour protection")
	cmd.Flags().Float64Var(&stress, "stress", 0, "Current stress")
	cmd.Flags().Float64Var(&stressDelta, "stress-delta", 0, "Extra stress to apply")
	_ = cmd.MarkFlagRequired("incoming")

	return cmd
}

func newCalcNotationCmd(mgr Manager) *cobra.Command {
	var req calc.SkillNotationRequest

	cmd := &cobra.Command{
		Use:   "notation LABEL",
		Short: "Ask the calculation API for a skill check dice expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Label = args[0]
			notation, err := mgr.CalcNotation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), map[string]string{"notation": notation})
		},
	}

	cmd.Flags().IntVarP(&req.NetDice, "net", "n", 0, "Net advantage dice")
	cmd.Flags().IntVarP(&req.Modifier, "mod", "m", 0, "Flat modifier")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
