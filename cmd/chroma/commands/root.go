// Package commands implements the CLI commands for chroma.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/chroma/internal/adapters/report"
	"go.trai.ch/chroma/internal/app"
	"go.trai.ch/chroma/internal/build"
)

// CLI represents the command line interface for chroma.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "chroma",
		Short:         "Explore chromatography and mass spectrometry records",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the settings file (default chroma.yaml)")
	rootCmd.PersistentFlags().StringP("format", "o", "auto", "Output format: auto, text or json")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("metrics", false, "Log memo statistics after each render")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newTableCmd())
	rootCmd.AddCommand(c.newPlotCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetLogHook sets up a PersistentPreRun function that hands the logging flags
// to fn before any command runs.
func (c *CLI) SetLogHook(fn func(json, verbose bool)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		json, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}
		fn(json, verbose)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func options(cmd *cobra.Command) (app.Options, error) {
	configPath, _ := cmd.Flags().GetString("config")
	metrics, _ := cmd.Flags().GetBool("metrics")
	rawFormat, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(rawFormat)
	if err != nil {
		return app.Options{}, err
	}
	overrides, err := settingsOverrides(cmd)
	if err != nil {
		return app.Options{}, err
	}
	return app.Options{
		ConfigPath: configPath,
		Format:     format,
		Overrides:  overrides,
		Metrics:    metrics,
	}, nil
}
