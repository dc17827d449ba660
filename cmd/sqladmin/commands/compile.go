package commands

import (
	"fmt"

	"github.com/satishbabariya/sqladmin/internal/core/query/compiler"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/spf13/cobra"
)

func newCompileCommand(root *rootOptions) *cobra.Command {
	var flags findFlags
	var data, dialect string
	var plain bool

	cmd := &cobra.Command{
		Use:   "compile <find|create|update|delete> <table>",
		Short: "Print the SQL a command would run, without connecting",
		Long: `Compile a find or mutation to SQL and print it with its parameters.

The dialect defaults to the configured provider. Row-return clauses that an
adapter adds at run time (RETURNING, OUTPUT) are not shown.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"find", "create", "update", "delete"},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := resolveDialect(root, dialect)
			if err != nil {
				return err
			}

			q, err := compileStatement(d, args[0], args[1], &flags, data)
			if err != nil {
				return err
			}

			if plain {
				fmt.Fprintln(ui.Out, q.Query)
				for i, a := range q.Args {
					name, v := ui.Param(i, a)
					fmt.Fprintf(ui.Out, "%s: %v\n", name, v)
				}
				return nil
			}
			return ui.PrintSQL(q.Query, q.Args)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON object of column values (create, update)")
	cmd.Flags().StringVar(&dialect, "dialect", "", "Target dialect (postgres, mysql, sqlserver, oracle, sqlite)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print without markdown rendering")
	return cmd
}

func resolveDialect(root *rootOptions, name string) (compiler.Dialect, error) {
	if name != "" {
		return compiler.ForName(domain.SQLDialect(name))
	}

	a, err := container.NewAdapter(root.cfg.Database)
	if err != nil {
		return compiler.Dialect{}, fmt.Errorf("resolve dialect from provider: %w", err)
	}
	return compiler.ForName(a.Dialect())
}

func compileStatement(d compiler.Dialect, kind, table string, flags *findFlags, data string) (domain.SQL, error) {
	filter, err := parseWhere(flags.where)
	if err != nil {
		return domain.SQL{}, err
	}

	switch kind {
	case "find":
		return compiler.Select(d, table, filter, flags.options()), nil
	case "create":
		record, err := parseData(data)
		if err != nil {
			return domain.SQL{}, err
		}
		return compiler.Insert(d, table, record, compiler.Returning{})
	case "update":
		record, err := parseData(data)
		if err != nil {
			return domain.SQL{}, err
		}
		return compiler.Update(d, table, record, filter, compiler.Returning{})
	case "delete":
		return compiler.Delete(d, table, filter, compiler.Returning{}), nil
	default:
		return domain.SQL{}, fmt.Errorf("unknown statement %q: want find, create, update or delete", kind)
	}
}
