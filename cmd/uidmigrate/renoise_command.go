package main

import (
	"github.com/spf13/cobra"

	"uidmigrate/internal/renoise"
)

func newRenoiseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "renoise <song.xrns>",
		Short: "Migrate VST3 class IDs in a Renoise song file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runMigration(ctx, cmd, renoise.Format, args[0])
			return err
		},
	}
}
