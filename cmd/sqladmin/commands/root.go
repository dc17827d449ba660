// Package commands implements CLI commands.
package commands

import (
	"context"
	"fmt"

	"github.com/satishbabariya/sqladmin/internal/config"
	"github.com/satishbabariya/sqladmin/internal/debug"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/spf13/cobra"
)

// newContainer is replaced in tests.
var newContainer = container.NewContainer

// rootOptions holds the global flags and the configuration they resolve to.
type rootOptions struct {
	provider   string
	url        string
	driver     string
	primaryKey string
	debug      bool
	yes        bool

	cfg *config.Config
}

// NewRootCommand creates the sqladmin root command.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "sqladmin",
		Short: "Query and administer SQL databases",
		Long: `sqladmin runs finds, mutations, raw statements and schema changes against
PostgreSQL, MySQL, SQL Server, Oracle and SQLite through one interface.

Connection settings come from .sqladmin.yaml, .env files, SQLADMIN_* and
DATABASE_URL environment variables, and the flags below, in increasing
order of precedence.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.provider, "provider", "p", "", "Database provider (postgres, mysql, sqlserver, oracle, sqlite)")
	flags.StringVarP(&opts.url, "url", "u", "", "Connection URL or DSN")
	flags.StringVar(&opts.driver, "driver", "", "database/sql driver override (e.g. pgx)")
	flags.StringVar(&opts.primaryKey, "primary-key", "", "Generated key column reported by create")
	flags.BoolVar(&opts.debug, "debug", false, "Log every statement to stderr")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "Skip confirmation prompts")

	cmd.AddCommand(newFindCommand(opts))
	cmd.AddCommand(newCreateCommand(opts))
	cmd.AddCommand(newUpdateCommand(opts))
	cmd.AddCommand(newDeleteCommand(opts))
	cmd.AddCommand(newExecCommand(opts))
	cmd.AddCommand(newTableCommand(opts))
	cmd.AddCommand(newCompileCommand(opts))
	cmd.AddCommand(newInfoCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		ui.PrintError("%v", err)
	}
	return err
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Database.Provider = o.provider
	}
	if flags.Changed("url") {
		cfg.Database.URL = o.url
	}
	if flags.Changed("driver") {
		cfg.Database.Driver = o.driver
	}
	if flags.Changed("primary-key") {
		cfg.Database.PrimaryKey = o.primaryKey
	}
	if flags.Changed("debug") {
		cfg.Debug = o.debug
	}

	debug.Init(cfg.Debug)
	o.cfg = cfg
	return nil
}

// withContainer connects a container for the duration of fn.
func (o *rootOptions) withContainer(ctx context.Context, fn func(c *container.Container) error) error {
	c, err := newContainer(o.cfg)
	if err != nil {
		return err
	}
	if err := c.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if err := c.Close(ctx); err != nil {
			debug.Warn("close failed", "error", err)
		}
	}()

	return fn(c)
}

// confirm asks before a destructive command unless --yes was given.
func (o *rootOptions) confirm(format string, args ...interface{}) (bool, error) {
	if o.yes {
		return true, nil
	}
	return ui.Confirm(fmt.Sprintf(format, args...))
}
