package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/andyballingall/whisperspace-records/internal/calc"
	"github.com/andyballingall/whisperspace-records/internal/config"
	"github.com/andyballingall/whisperspace-records/internal/fixture"
	"github.com/andyballingall/whisperspace-records/internal/fs"
	"github.com/andyballingall/whisperspace-records/internal/hooks"
	"github.com/andyballingall/whisperspace-records/internal/validator"
)

// Version is the current version of wsr, set at build time.
var Version = "dev"

// Banner with colour codes.
var Banner = "\033[36m" + `
 _       __ _____ ____ 
| |     / // ___// __ \
| | /| / / \__ \/ /_/ /
| |/ |/ / ___/ / _, _/ 
|__/|__/ /____/_/ |_|  
` + "\033[0m"

var LongDescription = `
wsr checks Whisperspace character records. It validates record files against the
version 1 record structure, runs the fixture smoke test, serves validation over
HTTP and talks to the calculation API for attacks, damage and skill checks.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stdout, stderr io.Writer,
	envProvider fs.EnvProvider,
) *cobra.Command {
	var debug bool
	var noColour bool
	configPath := pathValue("")

	rootCmd := &cobra.Command{
		Use:           "wsr",
		Short:         "Whisperspace character record tooling",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help and completion commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) {
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				return nil
			}

			// 2. Load Configuration
			cfg, err := config.Load(".", string(configPath), envProvider)
			if err != nil {
				return fmt.Errorf("configuration failed: %w", err)
			}

			logger, _, err := setupLogger(stderr, ll, cfg.LogFile)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}
			if cfg.Path != "" {
				logger.Debug("configuration loaded", "path", cfg.Path)
			}

			// 3. Build Dependencies
			bus := hooks.NewBus(logger)
			logHooks(bus, logger)

			client := calc.NewClient(cfg.CalcAPIBase,
				calc.WithTimeout(cfg.CalcTimeout),
				calc.WithBus(bus),
				calc.WithLogger(logger.With("component", "calc")),
			)

			newTester := func() (*fixture.Tester, error) {
				return fixture.NewSchemaTester(validator.NewSanthoshCompiler())
			}

			// 4. Hydrate the Lazy Wrapper
			realMgr, err := NewCLIManager(logger, cfg, newTester, bus, client, stdout)
			if err != nil {
				return fmt.Errorf("failed to compile record schema: %w", err)
			}
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().VarP(&configPath, "config", "f",
		fmt.Sprintf("path to config file (default ./%s when present)", config.ConfigFile))
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewCheckFixturesCmd(lazy))
	rootCmd.AddCommand(NewSchemaCmd(lazy))
	rootCmd.AddCommand(NewServeCmd(lazy))
	rootCmd.AddCommand(NewRollCmd(lazy))
	rootCmd.AddCommand(NewCalcCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}

// useColour reads the global --nocolour flag.
func useColour(cmd *cobra.Command) bool {
	noColour, _ := cmd.Flags().GetBool("nocolour")
	return !noColour
}
