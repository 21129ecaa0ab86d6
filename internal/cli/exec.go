package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/LittleBiggler/pgsanity/internal/introspect"
)

var execCmd = &cobra.Command{
	Use:   "exec [sql]",
	Short: "Execute an ad-hoc SQL query and print the rows as JSON",
	Long: `Exec runs a single SQL statement against the target database and prints
the result rows as JSON on stdout.

The statement can be passed as an argument or piped on stdin. Unlike the
check catalog, exec does not restrict the statement; it runs with whatever
privileges the connecting role has. Treat it like psql.

Examples:
  pgsanity exec "SELECT COUNT(*) FROM users" -d appdb
  echo "SELECT user_id, status FROM subscriptions LIMIT 5" | pgsanity exec -d appdb`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExec,
}

type execFlagValues struct {
	conn    connFlagValues
	timeout time.Duration
}

var execFlags execFlagValues

func init() {
	rootCmd.AddCommand(execCmd)

	registerConnectionFlags(execCmd, &execFlags.conn)
	execCmd.Flags().DurationVar(&execFlags.timeout, "timeout", 3*time.Minute,
		"Abort if the query has not finished within this duration")
}

// resolveExecStatement returns the SQL from the argument or, failing that,
// from stdin.
func resolveExecStatement(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read SQL from stdin: %w", err)
	}
	sql := strings.TrimSpace(string(data))
	if sql == "" {
		return "", fmt.Errorf("no SQL statement provided\n" +
			"Pass the statement as an argument or pipe it on stdin:\n" +
			"  pgsanity exec \"SELECT 1\"\n" +
			"  echo \"SELECT 1\" | pgsanity exec")
	}
	return sql, nil
}

func runExec(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	sql, err := resolveExecStatement(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	connConfig, _, err := resolveConnection(&execFlags.conn, verbose)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), execFlags.timeout)
	defer cancel()

	querier, cleanup, err := openSession(ctx, connConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	records, err := introspect.ExecuteSQL(ctx, querier, sql)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode query result: %w", err)
	}
	return nil
}
