// Package cmd provides the CLI commands for mff-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/output"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/config"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "0.1.0"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	cfgFile string
	envFile string
	verbose bool
	format  string
	noColor bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mff-cost",
		Short: "Price dealer and group registrations",
		Long: `mff-cost prices dealer tables, power tiers and group badges.

It itemizes a group's cost, previews the price of a single change and
explains the difference between two snapshots of the same group.

Examples:
  mff-cost quote --group group.json
  mff-cost preview --group group.json --field power --value 3
  mff-cost diff --before old.json --after new.json --format json
  mff-cost serve --addr :8282`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file, JSON or YAML (default is $HOME/.mff-cost/config.json)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format (cli, json)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(newQuoteCmd(opts))
	rootCmd.AddCommand(newPreviewCmd(opts))
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newDiffCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newPricesCmd(opts))
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return NewRootCmd().Execute()
}

func initConfig(opts *rootOptions) error {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return err
	}

	path := opts.cfgFile
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	config.Set(cfg)

	// Initialize logging
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Warn("logging output unavailable, using stderr",
			zap.String("output", cfg.Logging.Output), zap.Error(err))
	}
	if opts.verbose {
		logging.SetLevel(zapcore.DebugLevel)
	}

	logging.Debug("configuration loaded", zap.String("path", path), zap.String("pricing_hash", cfg.Pricing.Hash()))
	return nil
}

// engine builds the cost engine from the loaded configuration
func engine() *cost.Engine {
	return cost.NewEngine(config.Get().Pricing)
}

// formatter picks the output format from the flag or the configuration
func formatter(opts *rootOptions) (output.Formatter, error) {
	format := opts.format
	if format == "" {
		format = config.Get().Output.DefaultFormat
	}
	color := !opts.noColor && term.IsTerminal(int(os.Stdout.Fd()))
	return output.New(format, color)
}

// newVersionCmd prints version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mff-cost version %s\n", Version)
		},
	}
}
