package commands

import (
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/spf13/cobra"
)

func newTableCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create, drop and alter tables",
	}

	cmd.AddCommand(newTableCreateCommand(root))
	cmd.AddCommand(newTableDropCommand(root))
	cmd.AddCommand(newAddColumnCommand(root))
	cmd.AddCommand(newDropColumnCommand(root))
	return cmd
}

func newTableCreateCommand(root *rootOptions) *cobra.Command {
	var specs []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a table if it does not exist",
		Long: `Create a table. Each --column is name:TYPE[:notnull][:default=VALUE],
for example --column id:"INTEGER PRIMARY KEY" --column name:TEXT:notnull.

Oracle has no IF NOT EXISTS and fails when the table already exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, err := parseColumns(specs)
			if err != nil {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if err := c.Adapter().CreateTable(cmd.Context(), args[0], cols); err != nil {
					return err
				}
				ui.PrintSuccess("Created table %s", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVarP(&specs, "column", "c", nil, "Column definition (repeatable)")
	return cmd
}

func newTableDropCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := root.confirm("Drop table %s?", args[0])
			if err != nil || !ok {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if err := c.Adapter().DeleteTable(cmd.Context(), args[0]); err != nil {
					return err
				}
				ui.PrintSuccess("Dropped table %s", args[0])
				return nil
			})
		},
	}
}

func newAddColumnCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-column <table> <column> <type>",
		Short: "Add a column to a table",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if err := c.Adapter().AddColumn(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				ui.PrintSuccess("Added column %s to %s", args[1], args[0])
				return nil
			})
		},
	}
}

func newDropColumnCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-column <table> <column>",
		Short: "Drop a column from a table (not supported on SQLite)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := root.confirm("Drop column %s from %s?", args[1], args[0])
			if err != nil || !ok {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if err := c.Adapter().DropColumn(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				ui.PrintSuccess("Dropped column %s from %s", args[1], args[0])
				return nil
			})
		},
	}
}
