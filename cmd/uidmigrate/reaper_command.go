package main

import (
	"github.com/spf13/cobra"

	"uidmigrate/internal/reaper"
)

func newReaperCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reaper <project.RPP>",
		Short: "Migrate VST3 class IDs in a REAPER project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runMigration(ctx, cmd, reaper.Format, args[0])
			return err
		},
	}
}
