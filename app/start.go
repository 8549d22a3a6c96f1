package app

import (
	"github.com/spf13/cobra"

	"github.com/portal-prestadores/portal/internal/config"
	"github.com/portal-prestadores/portal/internal/daemon"
	"github.com/portal-prestadores/portal/internal/web"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	startCmd.Flags().BoolVar(&fastShutdown, "fast-shutdown", false, "Skip the graceful 503 phase on shutdown")

	rootCmd.AddCommand(startCmd)
}

var (
	cfg config.Config

	devMode      bool
	browseStatic bool
	fastShutdown bool

	startCmd = &cobra.Command{
		Use:     "start",
		Short:   "Start the portal web service",
		PreRunE: loadConfig,
		RunE: func(_ *cobra.Command, _ []string) error {
			var opts []web.Option
			if fastShutdown {
				opts = append(opts, web.WithFastShutdown())
			}

			d, err := daemon.New(&cfg, opts...)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return d.Start() //nolint:wrapcheck
		},
	}
)

func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err //nolint:wrapcheck
	}

	if devMode {
		cfg.DevMode = true
	}

	if browseStatic {
		cfg.Webserver.BrowseStatic = true
	}

	return nil
}
