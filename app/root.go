// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "etc/main.toml"

var (
	configPath string // Path to the configuration file

	rootCmd = &cobra.Command{
		Use:   "portal",
		Short: "Portal de Prestadores is the web portal for service providers",
		Long: `Portal de Prestadores is the web portal for service providers.
It renders the portal pages, keeps one session per browser and talks to the
backend REST API on behalf of the signed in user.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to the configuration file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
