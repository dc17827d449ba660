package commands

import (
	"fmt"

	"github.com/hashicorp/go-version"
	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/core/database/pool"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/spf13/cobra"
)

type statsReporter interface {
	Stats() pool.PoolStats
}

func newInfoCommand(root *rootOptions) *cobra.Command {
	var require string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the connected server version, capabilities and pool state",
		Long: `Connect, then print the dialect, server version, adapter capabilities and
connection pool statistics.

--require checks the server version against a constraint such as ">= 14" or
">= 8.0, < 9" and fails when it is not met.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var constraint version.Constraints
			if require != "" {
				c, err := version.NewConstraint(require)
				if err != nil {
					return fmt.Errorf("invalid --require: %w", err)
				}
				constraint = c
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				a := c.Adapter()
				ui.PrintKV("dialect", a.Dialect())
				ui.PrintKV("capabilities", a.Capabilities())

				var v *version.Version
				if vr, ok := a.(database.VersionReporter); ok {
					var err error
					if v, err = vr.ServerVersion(cmd.Context()); err != nil {
						return err
					}
					ui.PrintKV("server version", v)
				}

				if sr, ok := a.(statsReporter); ok {
					s := sr.Stats()
					ui.PrintKV("pool", fmt.Sprintf("%d open, %d in use, %d idle (max %d)",
						s.OpenConnections, s.InUse, s.Idle, s.MaxOpenConnections))
				}

				if constraint == nil {
					return nil
				}
				if v == nil {
					return database.Unsupported(a.Dialect(), "server version check")
				}
				if !constraint.Check(v) {
					return fmt.Errorf("server version %s does not satisfy %q", v, require)
				}
				ui.PrintSuccess("Server version %s satisfies %s", v, require)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&require, "require", "", `Fail unless the server version satisfies this constraint, e.g. ">= 14"`)
	return cmd
}
