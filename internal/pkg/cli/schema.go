package cli

import (
	"github.com/spf13/cobra"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
)

func schemaCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [table]",
		Short: "Print table schema version",
		Long: `Command "schema"

Fetch the schema of the table and print its version.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d := root.dialogs()

			if err := d.AskConnection(root.options); err != nil {
				return query.NewParameterError(err)
			}
			table, err := d.AskTable(args)
			if err != nil {
				return query.NewParameterError(err)
			}
			if !query.IsKnownTable(table) {
				return query.NewParameterError(errors.Errorf(`"%s" is not a known table, run "dapq tables" to list them`, table))
			}

			namespace := root.options.GetString("namespace")
			schema, err := root.newClient().GetSchema(ctx, namespace, table)
			if err != nil {
				return err
			}

			root.logger.Infof(ctx, `Table "%s.%s" schema version: %d`, namespace, table, schema.Version)
			return nil
		},
	}

	connectionFlags(cmd)
	return cmd
}
