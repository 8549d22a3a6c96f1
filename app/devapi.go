package app

import (
	"github.com/spf13/cobra"

	"github.com/portal-prestadores/portal/internal/daemon"
)

func init() { //nolint: gochecknoinits
	devapiCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")
	devapiCmd.Flags().IntVar(&devapiPort, "port", 0, "Listen port, overrides devapi.port")

	rootCmd.AddCommand(devapiCmd)
}

var (
	devapiPort int

	devapiCmd = &cobra.Command{
		Use:   "devapi",
		Short: "Start a development backend with demo users, contracts and announcements",
		Long: `Start a development backend with demo users, contracts and announcements.
It serves the same REST API the portal talks to, below the path of api.baseurl.`,
		PreRunE: loadConfig,
		RunE: func(_ *cobra.Command, _ []string) error {
			if devapiPort > 0 {
				cfg.DevAPI.Port = devapiPort
			}

			d, err := daemon.NewDevAPI(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			return d.Start() //nolint:wrapcheck
		},
	}
)
