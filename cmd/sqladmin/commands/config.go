package commands

import (
	"net/url"

	"github.com/satishbabariya/sqladmin/internal/config"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/spf13/cobra"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the resolved configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(root.cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the resolved configuration to ~/.config/sqladmin/.sqladmin.yaml",
		Long: `Write the resolved configuration, flags included, to the user config file.
The database URL is not saved; keep it in DATABASE_URL or a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.SaveConfig(root.cfg)
			if err != nil {
				return err
			}
			ui.PrintSuccess("Saved configuration to %s", path)
			return nil
		},
	})

	return cmd
}

func showConfig(cfg *config.Config) {
	file := cfg.File
	if file == "" {
		file = "(none)"
	}

	ui.PrintKV("config file", file)
	ui.PrintKV("provider", cfg.Database.Provider)
	ui.PrintKV("url", redactURL(cfg.Database.URL))
	ui.PrintKV("driver", cfg.Database.Driver)
	ui.PrintKV("primary key", cfg.Database.PrimaryKey)
	ui.PrintKV("max connections", cfg.Database.MaxConnections)
	ui.PrintKV("max idle time", cfg.Database.MaxIdleTime)
	ui.PrintKV("connect timeout", cfg.Database.ConnectTimeout)
	ui.PrintKV("health check interval", cfg.Database.HealthCheckInterval)
	ui.PrintKV("debug", cfg.Debug)
}

// redactURL hides the password of URL-style connection strings.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
