package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"findigest/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "findigest",
	Short: "Generate an accounting digest from the accounting server",
	Long: `findigest pulls accounting records (issued invoices, overdue receivables)
from the accounting server, computes summary statistics per module and renders
the combined digest as HTML or JSON. The digest can be printed, written to a
file and/or sent by email.

Connection settings are read from the environment (see .env.example); the
--env flag loads an alternate dotenv file before anything else.

Required environment variables:
  ACCOUNTING_SERVER_URL  - Base URL of the accounting server
  ACCOUNTING_COMPANY     - Company namespace on the server`,
	Example: `  # Digest for the current month, HTML to stdout
  findigest

  # Digest for March, pretty JSON written to a file
  findigest --start 2026-03-01 --end 2026-03-31 --format json --output digest.json

  # Only the debtors module, dark theme, sent by email
  findigest --modules debtors --theme dark --email cfo@example.com

  # Verify server connectivity and exit
  findigest --test-connection`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDigest,
}

// Execute runs the root command; any fatal error exits with code 1.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().String("start", "", "Period start date (YYYY-MM-DD, default: first day of the current month)")
	rootCmd.Flags().String("end", "", "Period end date (YYYY-MM-DD, default: today)")
	rootCmd.Flags().String("theme", "default", "HTML theme (default, dark, compact)")
	rootCmd.Flags().StringP("format", "f", "html", "Output format (html or json)")
	rootCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().String("email", "", "Send the digest to these comma-separated recipients")
	rootCmd.Flags().String("modules", "", "Comma-separated modules to run (invoices,debtors; default: all)")
	rootCmd.Flags().String("env", "", "Load this dotenv file instead of .env")
	rootCmd.Flags().Bool("test-connection", false, "Check accounting server connectivity and exit")
}
