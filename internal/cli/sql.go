package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tansive/tristate/internal/common/logtrace"
	"github.com/tansive/tristate/internal/sqlpatch"
)

func newSQLCmd() *cobra.Command {
	var (
		table     string
		where     []string
		patchFile string
		exec      bool
		expandEnv bool
	)
	cmd := &cobra.Command{
		Use:   "sql --table TABLE --where COL=VALUE -p PATCH [--exec]",
		Short: "Render or run the UPDATE statement for a merge patch",
		Long: `Render or run the PostgreSQL UPDATE statement for a merge patch.

Top-level members of the patch are columns: null members set the column to
NULL, other members are bound as parameters and columns left out of the patch
are not touched. Objects and arrays are bound as JSON text.

Conditions are column=value pairs; the value is read as a JSON literal when it
is one, so id=42 binds a number, name=api a string and owner=null matches NULL.

With --exec the statement runs against database.dsn from the config file or
the TRISTATE_DSN environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logtrace.WithOperation(cmd.Context(), "sql")

			doc, err := readDocument(cmd, patchFile, expandEnv)
			if err != nil {
				return err
			}
			cols, err := sqlpatch.FromJSON(doc)
			if err != nil {
				return err
			}
			conds := make([]sqlpatch.Cond, 0, len(where))
			for _, w := range where {
				c, err := sqlpatch.ParseCond(w)
				if err != nil {
					return err
				}
				conds = append(conds, c)
			}
			stmt, err := sqlpatch.Build(cfg.Table(table), cols, conds, cfg.PatchOptions())
			if err != nil {
				return err
			}

			if !exec {
				return printStatement(cmd, stmt)
			}
			return execStatement(ctx, cmd, stmt)
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Table to update, optionally schema qualified")
	cmd.Flags().StringArrayVar(&where, "where", nil, "Condition as column=value (repeatable)")
	cmd.Flags().StringVarP(&patchFile, "patch", "p", "", "Merge patch holding the column values (JSON or YAML)")
	cmd.Flags().BoolVar(&exec, "exec", false, "Run the statement instead of printing it")
	cmd.Flags().BoolVar(&expandEnv, "env", false, "Expand {{ .ENV.VAR }} placeholders in the patch")
	cmd.MarkFlagRequired("table")
	cmd.MarkFlagRequired("where")
	cmd.MarkFlagRequired("patch")
	return cmd
}

func printStatement(cmd *cobra.Command, stmt sqlpatch.Statement) error {
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"sql":  stmt.SQL,
			"args": stmt.Args,
		})
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s;\n", stmt.SQL)
	for i, arg := range stmt.Args {
		fmt.Fprintf(w, "-- $%d = %v\n", i+1, arg)
	}
	return nil
}

func execStatement(ctx context.Context, cmd *cobra.Command, stmt sqlpatch.Statement) error {
	dsn, err := cfg.DSN()
	if err != nil {
		return err
	}
	db, err := sqlpatch.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := sqlpatch.Exec(ctx, db, stmt, cfg.RetryPolicy())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), map[string]int64{"rows": rows})
	}
	okLabel.Fprintf(cmd.OutOrStdout(), "%d rows updated\n", rows)
	return nil
}
