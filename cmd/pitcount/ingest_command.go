package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
	"pitcount/internal/config"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var source string
	var region string

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a survey upload (CSV or XLSX) as a named dataset",
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
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve upload path: %w", err)
			}

			result, err := api.Ingest(cmd.Context(), api.IngestRequest{
				Config: cfg,
				Logger: logger,
				Path:   path,
				Source: source,
				Region: region,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ingested %s as dataset %q\n", result.Dataset.OriginalFile, result.Dataset.Source)
			fmt.Fprintf(out, "  Region:     %s (%.0f%% confidence)\n",
				result.Detection.Region.DisplayName(), result.Detection.Confidence*100)
			fmt.Fprintf(out, "  Households: %d\n", result.Dataset.HouseholdCount)
			fmt.Fprintf(out, "  Members:    %d\n", result.Members)
			if len(result.Issues) > 0 {
				fmt.Fprintf(out, "  Validation: %d out-of-catalog answers (run `pitcount validate` for details)\n", len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "Dataset label, e.g. ES, TH, Unsheltered (required)")
	cmd.Flags().StringVarP(&region, "region", "r", "", "Force a regional form instead of auto-detecting")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <source>",
		Short: "Remove a stored dataset",
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
			if err := api.RemoveDataset(cmd.Context(), api.RemoveDatasetRequest{
				Config: cfg,
				Logger: logger,
				Source: args[0],
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed dataset %q\n", args[0])
			return nil
		},
	}
}
