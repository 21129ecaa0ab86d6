package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/LittleBiggler/pgsanity/internal/introspect"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in the target database",
	Long: `Tables lists the table names visible in the configured schemas and prints
them as JSON on stdout.

Examples:
  # List tables in the public schema (the default)
  pgsanity tables -d appdb

  # Include reporting schemas
  pgsanity tables -d appdb --schema public --schema marts`,
	Args: cobra.NoArgs,
	RunE: runTables,
}

type tablesFlagValues struct {
	conn    connFlagValues
	schemas []string
	timeout time.Duration
}

var tablesFlags tablesFlagValues

func init() {
	rootCmd.AddCommand(tablesCmd)

	registerConnectionFlags(tablesCmd, &tablesFlags.conn)
	tablesCmd.Flags().StringSliceVar(&tablesFlags.schemas, "schema", nil,
		"Schema to list tables from (can be specified multiple times, default: public)")
	tablesCmd.Flags().DurationVar(&tablesFlags.timeout, "timeout", time.Minute,
		"Abort if the listing has not finished within this duration")
}

func runTables(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	connConfig, projectCfg, err := resolveConnection(&tablesFlags.conn, verbose)
	if err != nil {
		return err
	}

	schemas := tablesFlags.schemas
	if len(schemas) == 0 && projectCfg != nil {
		schemas = projectCfg.Scan.Schemas
	}

	ctx, cancel := context.WithTimeout(context.Background(), tablesFlags.timeout)
	defer cancel()

	querier, cleanup, err := openSession(ctx, connConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	tables, err := introspect.ListTables(ctx, querier, schemas)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(map[string][]string{"tables": tables}); err != nil {
		return fmt.Errorf("failed to encode table list: %w", err)
	}
	return nil
}
