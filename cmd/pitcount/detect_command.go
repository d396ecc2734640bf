package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
	"pitcount/internal/report"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var sources []string
	var countDate string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Scan stored datasets for duplicate persons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result, err := api.Detect(cmd.Context(), api.DetectRequest{
				Config:    cfg,
				Logger:    logger,
				Sources:   sources,
				CountDate: countDate,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (count date %s)\n", result.Run.ID, result.Run.CountDate)
			fmt.Fprintln(out, renderSummaryTable(result.Summary))
			fmt.Fprintf(out, "Export the annotated sheet with `pitcount export annotated.xlsx`\n")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sources, "sources", nil, "Limit the scan to named dataset labels")
	cmd.Flags().StringVar(&countDate, "count-date", "", "Override the configured count date (YYYY-MM-DD)")
	return cmd
}

func renderSummaryTable(summary report.DedupSummary) string {
	headers := []string{"Source", "Records", "Likely", "Somewhat", "Possible", "No Identity", "Unique", "Flagged %"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}

	rows := make([][]string, 0, len(summary.Sources)+1)
	for _, source := range summary.Sources {
		rows = append(rows, summaryRow(source, summary.BySource[source]))
	}
	rows = append(rows, summaryRow("Total", summary.Total))

	return renderTable(headers, rows, aligns)
}

func summaryRow(label string, counts report.TierCounts) []string {
	return []string{
		label,
		strconv.Itoa(counts.Records),
		strconv.Itoa(counts.Likely),
		strconv.Itoa(counts.SomewhatLikely),
		strconv.Itoa(counts.Possible),
		strconv.Itoa(counts.NoIdentity),
		strconv.Itoa(counts.Unique),
		fmt.Sprintf("%.1f%%", counts.FlaggedPercent()),
	}
}
