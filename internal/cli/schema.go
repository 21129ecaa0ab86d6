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

var schemaCmd = &cobra.Command{
	Use:   "schema <table>",
	Short: "Show column names and types for a table",
	Long: `Schema prints the column names and data types of the given table as JSON
on stdout, in ordinal position order.

Examples:
  pgsanity schema subscriptions -d appdb
  pgsanity schema users --connection "postgresql://user@host/appdb"`,
	Args: RequireTableName,
	RunE: runSchema,
}

type schemaFlagValues struct {
	conn    connFlagValues
	timeout time.Duration
}

var schemaFlags schemaFlagValues

func init() {
	rootCmd.AddCommand(schemaCmd)

	registerConnectionFlags(schemaCmd, &schemaFlags.conn)
	schemaCmd.Flags().DurationVar(&schemaFlags.timeout, "timeout", time.Minute,
		"Abort if the lookup has not finished within this duration")
}

func runSchema(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	table := args[0]

	connConfig, _, err := resolveConnection(&schemaFlags.conn, verbose)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), schemaFlags.timeout)
	defer cancel()

	querier, cleanup, err := openSession(ctx, connConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	columns, err := introspect.TableSchema(ctx, querier, table)
	if err != nil {
		return err
	}
	if len(columns) == 0 {
		fmt.Fprintf(os.Stderr, "Warning: no columns found for table %q (does it exist?)\n", table)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(columns); err != nil {
		return fmt.Errorf("failed to encode schema: %w", err)
	}
	return nil
}
