package commands

import (
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/service"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/spf13/cobra"
)

// findFlags are shared by find and compile.
type findFlags struct {
	where   string
	limit   int
	offset  int
	orderBy string
	joins   string
	fields  []string
}

func (f *findFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.where, "where", "w", "", `JSON filter, e.g. '{"status":"active","id":[1,2]}' or '{"$or":[{"name":"ada"}]}'`)
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of rows")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVar(&f.orderBy, "order-by", "", "ORDER BY expression")
	cmd.Flags().StringVar(&f.joins, "joins", "", "Join clause appended after FROM")
	cmd.Flags().StringSliceVar(&f.fields, "fields", nil, "Columns to select")
}

func (f *findFlags) queryOptions() ([]service.QueryOption, error) {
	filter, err := parseWhere(f.where)
	if err != nil {
		return nil, err
	}
	return []service.QueryOption{
		service.WithWhere(filter),
		service.WithTake(f.limit),
		service.WithSkip(f.offset),
		service.WithOrderBy(f.orderBy),
		service.WithJoin(f.joins),
		service.WithSelect(f.fields...),
	}, nil
}

func (f *findFlags) options() domain.Options {
	return domain.Options{
		Limit:   f.limit,
		Offset:  f.offset,
		OrderBy: f.orderBy,
		Joins:   f.joins,
		Fields:  f.fields,
	}
}

func newFindCommand(root *rootOptions) *cobra.Command {
	var flags findFlags
	var count bool

	cmd := &cobra.Command{
		Use:   "find <table>",
		Short: "Select rows from a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			opts, err := flags.queryOptions()
			if err != nil {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if count {
					n, err := c.QueryService().Count(cmd.Context(), table, opts...)
					if err != nil {
						return err
					}
					ui.PrintKV("count", n)
					return nil
				}

				rows, err := c.QueryService().FindMany(cmd.Context(), table, opts...)
				if err != nil {
					return err
				}
				return ui.PrintRows(flags.fields, rows)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&count, "count", false, "Print the number of matching rows instead")
	return cmd
}

func newCreateCommand(root *rootOptions) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "create <table>",
		Short: "Insert a row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := parseData(data)
			if err != nil {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				row, err := c.QueryService().Create(cmd.Context(), args[0], record)
				if err != nil {
					return err
				}
				ui.PrintSuccess("Created row in %s", args[0])
				return ui.PrintRows(nil, []domain.Row{row})
			})
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", `JSON object of column values, e.g. '{"name":"ada"}'`)
	return cmd
}

func newUpdateCommand(root *rootOptions) *cobra.Command {
	var data, where string

	cmd := &cobra.Command{
		Use:   "update <table>",
		Short: "Update rows matching a filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			record, err := parseData(data)
			if err != nil {
				return err
			}
			filter, err := parseWhere(where)
			if err != nil {
				return err
			}

			if filter.IsEmpty() {
				ok, err := root.confirm("Update every row in %s?", table)
				if err != nil || !ok {
					return err
				}
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				res, err := c.QueryService().Update(cmd.Context(), table, record, filter)
				if err != nil {
					return err
				}
				return printMutation("Updated", table, res)
			})
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON object of new column values")
	cmd.Flags().StringVarP(&where, "where", "w", "", "JSON filter")
	return cmd
}

func newDeleteCommand(root *rootOptions) *cobra.Command {
	var where string

	cmd := &cobra.Command{
		Use:   "delete <table>",
		Short: "Delete rows matching a filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			filter, err := parseWhere(where)
			if err != nil {
				return err
			}

			prompt := "Delete matching rows from %s?"
			if filter.IsEmpty() {
				prompt = "Delete every row in %s?"
			}
			ok, err := root.confirm(prompt, table)
			if err != nil || !ok {
				return err
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				res, err := c.QueryService().Delete(cmd.Context(), table, filter)
				if err != nil {
					return err
				}
				return printMutation("Deleted", table, res)
			})
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "JSON filter")
	return cmd
}

func printMutation(verb, table string, res *domain.MutationResult) error {
	ui.PrintSuccess("%s %d row(s) in %s", verb, res.RowsAffected, table)
	if len(res.Rows) > 0 {
		return ui.PrintRows(nil, res.Rows)
	}
	return nil
}
