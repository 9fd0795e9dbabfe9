// Package cli implements the pocketos command line.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pocketos",
		Short: "Simulated handset home-screen shell",
		Long: `PocketOS runs a simulated handset: power lifecycle, lock screen,
home screen apps, notifications, settings and assistant apps. The device
is driven over a REST API and streams every visual change over WebSocket.

Configuration comes from the environment (PORT, STORAGE_DRIVER,
AI_API_KEY, ...); flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newCatalogCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("pocketos", Version)
		},
	})
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
