package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pitcount/internal/api"
)

func newValidateCommand(ctx *commandContext) *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Audit stored datasets for out-of-catalog answers",
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

			result, err := api.Validate(cmd.Context(), api.ValidateRequest{
				Config:  cfg,
				Logger:  logger,
				Sources: sources,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Issues) == 0 {
				fmt.Fprintf(out, "All %d records carry recognized answers\n", result.Records)
				return nil
			}

			headers := []string{"Row", "Source", "Field", "Value", "Allowed"}
			rows := make([][]string, 0, len(result.Issues))
			for _, issue := range result.Issues {
				rows = append(rows, []string{
					strconv.Itoa(issue.RowRef),
					issue.Source,
					string(issue.Field),
					issue.Value,
					truncateOptions(issue.Allowed, 60),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}))
			fmt.Fprintf(out, "%d of %d records carry unrecognized answers\n", issueRecordCount(result), result.Records)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&sources, "sources", nil, "Limit the audit to named dataset labels")
	return cmd
}

func issueRecordCount(result api.ValidateResult) int {
	seen := make(map[string]struct{}, len(result.Issues))
	for _, issue := range result.Issues {
		seen[issue.Source+"#"+strconv.Itoa(issue.RowRef)] = struct{}{}
	}
	return len(seen)
}

// truncateOptions keeps the allowed-values hint short enough for a table row.
func truncateOptions(options []string, max int) string {
	joined := strings.Join(options, ", ")
	if len(joined) <= max {
		return joined
	}
	return joined[:max-3] + "..."
}
