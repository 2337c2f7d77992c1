// Package cli implements studioctl, the maintenance CLI for the studio site
// database: migrations and console user bootstrap.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studio-site/internal/config"
	internaldb "studio-site/internal/db"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if getOutputFormat(rootCmd) == "json" {
			_ = printJSON(os.Stdout, map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		dbPath  string
		envFile string
		output  string
	)

	rootCmd := &cobra.Command{
		Use:           "studioctl",
		Short:         "Studio site maintenance CLI",
		Long:          "Maintenance commands for the studio site database: migrations and console users.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(output); err != nil {
				return err
			}
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			// Precedence: flag > env > default
			if !cmd.Flags().Changed("db") {
				if v := os.Getenv("DB_PATH"); v != "" {
					dbPath = v
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "studio.sqlite", "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load before reading DB_PATH")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")

	open := func() (*internaldb.Store, error) {
		st, err := internaldb.OpenStore(dbPath, 1)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", dbPath, err)
		}
		return st, nil
	}

	rootCmd.AddCommand(
		newMigrateCmd(open),
		newAdminCmd(open),
		newVersionCmd(),
	)
	return rootCmd
}

type storeOpener func() (*internaldb.Store, error)
