package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored datasets and detection runs",
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

			result, err := api.Status(cmd.Context(), api.StatusRequest{Config: cfg, Logger: logger})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Datasets) == 0 {
				fmt.Fprintln(out, "No datasets stored; ingest an upload with `pitcount ingest <file> --source <label>`")
				return nil
			}

			fmt.Fprintln(out, "Datasets:")
			headers := []string{"Source", "Region", "File", "Households", "Members", "Ingested"}
			rows := make([][]string, 0, len(result.Datasets))
			for _, dataset := range result.Datasets {
				rows = append(rows, []string{
					dataset.Source,
					dataset.Region.DisplayName(),
					dataset.OriginalFile,
					strconv.Itoa(dataset.HouseholdCount),
					strconv.Itoa(dataset.MemberCount),
					dataset.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}))

			if len(result.Runs) == 0 {
				fmt.Fprintln(out, "No detection runs; scan with `pitcount detect`")
				return nil
			}

			fmt.Fprintln(out, "Runs:")
			runHeaders := []string{"Run", "Count Date", "Sources", "Created"}
			runRows := make([][]string, 0, len(result.Runs))
			for _, run := range result.Runs {
				runRows = append(runRows, []string{
					run.ID,
					run.CountDate,
					strings.Join(run.Sources, ", "),
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, renderTable(runHeaders, runRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}
