package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "uidmigrate",
		Short:         "Migrate old yabridge VST3 class IDs in DAW project files",
		Long: "uidmigrate rewrites the VST3 class IDs that old yabridge versions derived\n" +
			"from Wine byte order. Each supported host gets its own subcommand; every\n" +
			"replacement is confirmed interactively and written to a new '-migrated'\n" +
			"copy of the project, never to the original file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newArdourCommand(ctx))
	rootCmd.AddCommand(newReaperCommand(ctx))
	rootCmd.AddCommand(newRenoiseCommand(ctx))
	rootCmd.AddCommand(newBitwigCommand(ctx))
	rootCmd.AddCommand(newReplicatePresetsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
