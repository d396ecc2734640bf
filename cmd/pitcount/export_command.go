package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "export <file.xlsx|file.csv>",
		Short: "Write the annotated member sheet for a detection run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result, err := api.Export(cmd.Context(), api.ExportRequest{
				Config: cfg,
				Logger: logger,
				Path:   args[0],
				RunID:  runID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d annotated records to %s\n", result.Records, result.Path)
			fmt.Fprintf(out, "Run %s (count date %s)\n", result.Run.ID, result.Run.CountDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Export a specific run (defaults to the latest)")
	return cmd
}
