package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table <records>",
		Short: "Print the grouped table with rolling statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return c.app.Table(cmd.Context(), args[0], opts)
		},
	}
	addSettingsFlags(cmd)
	return cmd
}

func (c *CLI) newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <records>",
		Short: "Print the stacked bars, mass spectra and rolling mean",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			return c.app.Plot(cmd.Context(), args[0], opts)
		},
	}
	addSettingsFlags(cmd)
	return cmd
}
