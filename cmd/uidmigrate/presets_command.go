package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uidmigrate/internal/presets"
)

func newReplicatePresetsCommand(ctx *commandContext) *cobra.Command {
	var presetDirFlag string

	cmd := &cobra.Command{
		Use:   "replicate-presets <mapping.replacements.toml>",
		Short: "Apply a saved replacement mapping to Bitwig's preset files",
		Long: "Finishes a Bitwig migration whose project file was already rewritten: loads\n" +
			"the replacement mapping saved by 'uidmigrate bitwig' and rewrites the class\n" +
			"ID field of every matching .vstpreset file in place. Safe to re-run; a\n" +
			"second pass finds nothing left to rewrite.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mapping, err := presets.LoadMapping(args[0])
			if err != nil {
				return err
			}
			if len(mapping.Replacements) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The mapping contains no replacements, nothing to do.")
				return nil
			}

			dir, err := resolvePresetDir(ctx, presetDirFlag)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			stats, err := presets.Replicate(dir, mapping, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rewrote %d of %d preset files under '%s'\n", stats.Rewritten, stats.Scanned, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&presetDirFlag, "preset-dir", "", "Directory holding Bitwig's extracted .vstpreset files")
	return cmd
}
