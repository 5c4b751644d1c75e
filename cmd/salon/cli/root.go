// Package cli holds the salon command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "salon",
	Short: "Back office for a single salon",
	Long: `Salon runs the back-office HTTP API and its maintenance tasks.

Configuration comes from the environment (PG_DSN, REDIS_ADDR, CSRF_SECRET, ...).`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)
}
