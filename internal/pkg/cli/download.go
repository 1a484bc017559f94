package cli

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/dap"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
)

const (
	DefaultBaseURL   = "https://api-gateway.instructure.com"
	DefaultNamespace = "canvas"
)

func downloadCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download [table]",
		Short: "Download a table",
		Long: `Command "download"

Run a snapshot or incremental query of the table
and download the result files to the output directory.

Files are stored in the "snapshot" or "incremental"
subdirectory and prefixed by the table name.`,
		Example: `  dapq download courses --kind snapshot --format csv --output ./data
  dapq download users -k incremental --since 2024-01-15T10:30:00+00:00 -o ./data`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params, err := root.dialogs().AskDownloadParameters(ctx, root.options, args)
			if err != nil {
				return err
			}

			out := query.NewWorkflow(root.newQueryDependencies()).Execute(ctx, params)
			if !out.Succeeded() {
				return query.ErrorOf(out)
			}

			root.printDownloadSummary(ctx, params, out)
			return nil
		},
	}

	connectionFlags(cmd)
	cmd.Flags().StringP("kind", "k", query.KindSnapshot.String(), "query kind, snapshot or incremental")
	cmd.Flags().String("since", "", "start of the incremental query, ISO-8601, for example 2024-01-15T10:30:00+00:00")
	cmd.Flags().StringP("format", "f", query.FormatJSONL.String(), "file format, jsonl, csv, tsv or parquet")
	cmd.Flags().StringP("output", "o", "", "output directory")
	cmd.Flags().Int("concurrency", dap.DefaultConcurrency, "maximum number of parallel file downloads")
	return cmd
}

func connectionFlags(cmd *cobra.Command) {
	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("base-url", "u", DefaultBaseURL, "DAP API gateway URL")
	cmd.Flags().String("client-id", "", "client ID of the DAP API key")
	cmd.Flags().String("client-secret", "", "client secret of the DAP API key")
	cmd.Flags().StringP("namespace", "n", DefaultNamespace, "DAP namespace")
}

func (root *RootCommand) printDownloadSummary(ctx context.Context, params query.Parameters, out query.Outcome) {
	done := color.New(color.FgGreen, color.Bold).Sprint("Done.")
	root.logger.Infof(
		ctx,
		`%s Table "%s" downloaded to "%s", files: %d, job: %s, took %s.`,
		done, params.Table, out.Directory, len(out.Files), out.JobID, out.Duration.Round(time.Millisecond),
	)
	for _, file := range out.Files {
		root.logger.Infof(ctx, "  %s", file)
	}
}
