package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
)

func tablesCommand(_ *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List known tables",
		Long: `Command "tables"

List Canvas tables which can be downloaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Table"})
			table.SetAutoFormatHeaders(false)
			table.SetBorder(false)
			for i, name := range query.Tables() {
				table.Append([]string{strconv.Itoa(i + 1), name})
			}
			table.Render()
			return nil
		},
	}
}
