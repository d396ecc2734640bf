package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
	"pitcount/internal/flatten"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a detection run and its household composition",
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

			result, err := api.Report(cmd.Context(), api.ReportRequest{
				Config: cfg,
				Logger: logger,
				RunID:  runID,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Duplicate Detection", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "Run %s (count date %s)\n", result.Run.ID, result.Run.CountDate)
			fmt.Fprintln(out, renderSummaryTable(result.Summary))

			for _, dataset := range result.Datasets {
				for _, line := range renderSectionHeader("Households: "+dataset.Dataset.Source, colorize) {
					fmt.Fprintln(out, line)
				}
				renderHouseholds(out, dataset)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Report a specific run (defaults to the latest)")
	return cmd
}

func renderHouseholds(out io.Writer, dataset api.DatasetReport) {
	hh := dataset.Households
	headers := []string{"Household Type", "Households", "Persons"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight}

	types := make([]flatten.HouseholdType, 0, len(hh.HouseholdsByType))
	for t := range hh.HouseholdsByType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	rows := make([][]string, 0, len(types)+1)
	for _, t := range types {
		rows = append(rows, []string{
			string(t),
			strconv.Itoa(hh.HouseholdsByType[t]),
			strconv.Itoa(hh.PersonsByType[t]),
		})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(hh.Households), strconv.Itoa(hh.Persons)})
	fmt.Fprintln(out, renderTable(headers, rows, aligns))

	fmt.Fprintf(out, "Adults: %d  Youth (18-24): %d  Children: %d\n", hh.Adults, hh.Youth, hh.Children)
	fmt.Fprintf(out, "Youth households: %d  Veterans: %d  Chronically homeless: %d\n",
		hh.YouthHouseholds, hh.Veterans, hh.ChronicallyHomeless)
}
