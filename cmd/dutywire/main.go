package main

import (
	"os"

	"github.com/spf13/cobra"

	"dutywire/internal/interfaces/cli/migrate"
	"dutywire/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dutywire",
		Short: "Dutywire - overtime posting and signup allocation service",
		Long:  `Dutywire manages overtime postings, capacity-bounded signups, and supervisor assignments for duty rosters.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
