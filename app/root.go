// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evcare-admin",
	Short: "EVCare-Admin is the backend service for an EV service-center network",
	Long: `EVCare-Admin is the backend service for an EV service-center network.
It manages warranty claims, recall/service campaigns, technician work
assignments and parts logistics, and serves the REST API consumed by the
service-center web application.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
