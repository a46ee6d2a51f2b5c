package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "bankctl",
		Short:        "bankctl - operator tooling for the payment portal",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("database-url", "", "Postgres connection string (defaults to DATABASE_URL)")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedStaffCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
