package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uidmigrate/internal/bitwig"
	"uidmigrate/internal/presets"
	"uidmigrate/internal/prompt"
)

func newBitwigCommand(ctx *commandContext) *cobra.Command {
	var mappingOnly bool
	var presetDirFlag string

	cmd := &cobra.Command{
		Use:   "bitwig <project.bwproject>",
		Short: "Migrate VST3 class IDs in a Bitwig project and its preset files",
		Long: "Migrating Bitwig projects is a two step process: first the .bwproject file\n" +
			"is rewritten, then the .vstpreset state files Bitwig extracted from it are\n" +
			"updated to match. Between the steps you verify the intermediate project in\n" +
			"Bitwig; the confirmed replacements are saved to a mapping file so the second\n" +
			"step can also run later via 'uidmigrate replicate-presets'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			result, err := runMigration(ctx, cmd, bitwig.Format, args[0])
			if err != nil {
				return err
			}
			if result.AcceptedCount() == 0 {
				fmt.Fprintln(out, "No class IDs were migrated, so the preset files need no changes.")
				return nil
			}

			mapping := presets.NewMapping(result)
			mappingPath := presets.MappingPath(result.OutputPath)
			if err := mapping.Save(mappingPath); err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved the confirmed replacements to '%s'\n\n", mappingPath)

			fmt.Fprintln(out, prompt.Wrap(fmt.Sprintf(
				"Now close any Bitwig project you may still have open, and open '%s' instead. "+
					"Migrated plugin instances should show up correctly but with an error saying "+
					"that their plugin state cannot be loaded; that's normal. Once you have "+
					"confirmed that this is the case for all migrated plugins, type 'continue' "+
					"below to rewrite the preset files, or press Ctrl+C to abort.",
				result.OutputPath)))

			if mappingOnly {
				fmt.Fprintf(out, "\nRun 'uidmigrate replicate-presets %s' to finish the migration.\n", mappingPath)
				return nil
			}

			if err := prompt.ContinueGate(cmd.InOrStdin(), out); err != nil {
				return err
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
			fmt.Fprintf(out, "\nRewrote %d of %d preset files under '%s'\n", stats.Rewritten, stats.Scanned, dir)
			fmt.Fprintln(out, prompt.Wrap(fmt.Sprintf(
				"Now save the project, close it, and reopen '%s'. Everything should once "+
					"again be fully functional.", result.OutputPath)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mappingOnly, "mapping-only", false, "Write the replacement mapping but skip rewriting preset files")
	cmd.Flags().StringVar(&presetDirFlag, "preset-dir", "", "Directory holding Bitwig's extracted .vstpreset files")
	return cmd
}

func resolvePresetDir(ctx *commandContext, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Presets.Dir != "" {
		return cfg.Presets.Dir, nil
	}
	return presets.DefaultDir()
}
