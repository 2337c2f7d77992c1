package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	internaldb "studio-site/internal/db"
)

func newMigrateCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			if err := internaldb.Migrate(st.Write.DB); err != nil {
				return err
			}
			return printVersion(cmd, st)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			return printVersion(cmd, st)
		},
	})
	return cmd
}

func printVersion(cmd *cobra.Command, st *internaldb.Store) error {
	v, err := internaldb.SchemaVersion(st.Write.DB)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]int64{"schema_version": v})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}
