package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
                           _ _
  _ __   __ _ ___  __ _ _ __ (_) |_ _   _
 | '_ \ / _` + "`" + ` / __|/ _` + "`" + ` | '_ \| | __| | | |
 | |_) | (_| \__ \ (_| | | | | | |_| |_| |
 | .__/ \__, |___/\__,_|_| |_|_|\__|\__, |
 |_|    |___/                       |___/`

var rootCmd = &cobra.Command{
	Use:   "pgsanity",
	Short: "PostgreSQL data sanity scanner",
	Long: asciiLogo + `

pgsanity runs a fixed catalog of read-only integrity checks against a
PostgreSQL database: duplicate identifiers, contradictory subscription
lifecycle states, and activity gaps. Each check reports an exact violation
count plus a bounded, deterministically ordered sample of offending rows.

Scans never write. Every statement issued is a plain SELECT.

Exit Codes:
  0  - Success (scan completed, violations or not)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - Check query failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgsanity")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
