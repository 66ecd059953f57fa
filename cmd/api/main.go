package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/shopfront/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopfront",
		Short: "Shopfront catalog API server",
		Long:  `Shopfront serves a localized product-display storefront: a JSON-file product catalog, a cross-browser sync relay and per-country text resolution behind one REST API.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
