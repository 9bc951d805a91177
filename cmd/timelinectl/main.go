package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag    string
	tenantFlag string
	userFlag   string
	rootCmd    = &cobra.Command{
		Use:   "timelinectl",
		Short: "CLI client for the timeline service REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Timeline service base URL")
	rootCmd.PersistentFlags().StringVarP(&tenantFlag, "tenant", "t", "", "Tenant ID (required)")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Caller user ID")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
