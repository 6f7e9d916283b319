package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"uidmigrate/internal/journal"
	"uidmigrate/internal/migrate"
	"uidmigrate/internal/prompt"
)

// runMigration drives one confirmation-and-rewrite pass for a format
// command: preconditions, guidance text, interactive decisions, rewrite,
// summary table, and best-effort journal recording.
func runMigration(ctx *commandContext, cmd *cobra.Command, format migrate.Format, filename string) (*migrate.Result, error) {
	out := cmd.OutOrStdout()

	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}

	// Validate up front so the guidance text never shows for a file the
	// migration would refuse anyway. Run repeats the check before writing.
	outputPath, err := migrate.CheckSource(filename, format.Extension)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, prompt.Wrap(fmt.Sprintf(
		"This will go through '%s' to migrate old yabridge VST3 plugin instances. "+
			"The output will be saved to '%s', but make sure to still create a backup of "+
			"the original file in case something does go wrong. "+
			"For every VST3 plugin found you will be prompted with the question if you "+
			"want to migrate it. Answer 'yes' for all old yabridge VST3 plugin "+
			"instances, and 'no' for any other VST3 plugin. "+
			"Make sure to test whether the new project works immediately after migration.",
		filename, outputPath)))
	fmt.Fprintln(out)

	decide := ctx.decider
	if decide == nil {
		if cmd.InOrStdin() == os.Stdin && !prompt.StdinIsTerminal() {
			fmt.Fprintln(out, "Note: stdin is not a terminal, answers are read line by line from input.")
		}
		decide = prompt.Interactive(cmd.InOrStdin(), out)
	}

	result, err := migrate.Run(format, filename, decide, logger)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "\nMigration successful, wrote the results to '%s'\n", result.OutputPath)
	printSummary(out, result)
	recordRun(ctx, cmd, format, result)
	return result, nil
}

func printSummary(out io.Writer, result *migrate.Result) {
	if len(result.Decisions) == 0 {
		fmt.Fprintln(out, "No VST3 plugins with migratable class IDs were found.")
		return
	}

	rows := make([][]string, 0, len(result.Decisions))
	for _, decision := range result.Decisions {
		verdict := "kept"
		if decision.Accepted {
			verdict = "migrated"
		}
		rows = append(rows, []string{
			decision.Label,
			decision.Legacy.Hex(),
			decision.Current.Hex(),
			verdict,
		})
	}
	fmt.Fprintln(out, renderTable([]string{"Plugin", "Legacy class ID", "Current class ID", "Decision"}, rows))
}

// recordRun journals the finished run. Journal trouble is reported but
// never fails a migration that already wrote its output.
func recordRun(ctx *commandContext, cmd *cobra.Command, format migrate.Format, result *migrate.Result) {
	cfg, err := ctx.ensureConfig()
	if err != nil || !cfg.Journal.Enabled {
		return
	}

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordRun(context.Background(), format.Name, result); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: journal write failed: %v\n", err)
	}
}
