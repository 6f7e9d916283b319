package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uidmigrate/internal/ardour"
	"uidmigrate/internal/prompt"
)

func newArdourCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ardour <session.ardour>",
		Short: "Migrate VST3 class IDs in an Ardour session file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runMigration(ctx, cmd, ardour.Format, args[0])
			if err != nil {
				return err
			}
			if result.AcceptedCount() > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), prompt.Wrap(
					"You may have to manually clean Ardour's VST3 cache and rescan if it "+
						"cannot find the plugins after migrating."))
			}
			return nil
		},
	}
}
