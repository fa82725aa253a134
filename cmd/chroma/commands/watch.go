package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chroma/internal/app"
	"go.trai.ch/chroma/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <records>",
		Short: "Re-render whenever the records or the settings file change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := options(cmd)
			if err != nil {
				return err
			}
			rawView, _ := cmd.Flags().GetString("view")
			var view app.View
			switch rawView {
			case "table":
				view = app.ViewTable
			case "plot":
				view = app.ViewPlot
			default:
				return domain.InvalidSetting("view", rawView)
			}
			return c.app.Watch(cmd.Context(), args[0], view, opts)
		},
	}
	cmd.Flags().String("view", "table", "What to render: table or plot")
	addSettingsFlags(cmd)
	return cmd
}
