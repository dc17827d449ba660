package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/satishbabariya/sqladmin/internal/adapters/database"
	"github.com/satishbabariya/sqladmin/internal/adapters/database/oracle"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/satishbabariya/sqladmin/internal/utils/container"
	"github.com/satishbabariya/sqladmin/internal/watch"
	"github.com/spf13/cobra"
)

// optionExecutor is implemented by adapters that can run a statement
// without committing it.
type optionExecutor interface {
	ExecuteWithOptions(ctx context.Context, query string, opts oracle.ExecOptions, params ...interface{}) (*domain.ExecResult, error)
}

type execFlags struct {
	noCommit bool
	file     string
	watch    bool
}

func newExecCommand(root *rootOptions) *cobra.Command {
	var flags execFlags

	cmd := &cobra.Command{
		Use:   "exec [sql] [params...]",
		Short: "Run a raw SQL statement",
		Long: `Run a raw SQL statement with positional parameters.

Parameters that look like integers, floats, booleans or null are bound as
such; everything else is bound as a string. On SQL Server and Oracle plain
parameters are bound by name as param1, param2, ...

With --file the statement is read from a file and every argument is a
parameter. --watch re-runs the file each time it is saved, until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.watch && flags.file == "" {
				return fmt.Errorf("--watch requires --file")
			}
			if flags.file == "" && len(args) == 0 {
				return fmt.Errorf("requires a SQL statement or --file")
			}

			return root.withContainer(cmd.Context(), func(c *container.Container) error {
				if flags.file == "" {
					return runStatement(cmd.Context(), c.Adapter(), args[0], parseParams(args[1:]), flags.noCommit)
				}

				params := parseParams(args)
				run := func(ctx context.Context) error {
					query, err := readStatement(flags.file)
					if err != nil {
						return err
					}
					return runStatement(ctx, c.Adapter(), query, params, flags.noCommit)
				}

				if !flags.watch {
					return run(cmd.Context())
				}

				w, err := watch.NewWatcher(flags.file, run)
				if err != nil {
					return err
				}
				w.OnError = func(err error) { ui.PrintError("%v", err) }
				ui.PrintInfo("Watching %s (Ctrl+C to stop)", flags.file)
				return w.Run(cmd.Context())
			})
		},
	}

	cmd.Flags().BoolVar(&flags.noCommit, "no-commit", false, "Roll the statement back instead of committing (Oracle only)")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "Read the statement from a file")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Re-run --file whenever it changes")
	return cmd
}

// readStatement reads one statement from path, dropping a trailing semicolon.
func readStatement(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	query := strings.TrimSuffix(strings.TrimSpace(string(data)), ";")
	if query == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return query, nil
}

func runStatement(ctx context.Context, a database.Adapter, query string, params []interface{}, noCommit bool) error {
	res, err := execute(ctx, a, query, params, noCommit)
	if err != nil {
		return err
	}

	if len(res.Columns) > 0 {
		return ui.PrintRows(res.Columns, res.Rows)
	}
	ui.PrintSuccess("%d row(s) affected", res.RowsAffected)
	if res.LastInsertID != 0 {
		ui.PrintKV("last insert id", res.LastInsertID)
	}
	return nil
}

func execute(ctx context.Context, a database.Adapter, query string, params []interface{}, noCommit bool) (*domain.ExecResult, error) {
	if !noCommit {
		return a.Execute(ctx, query, params...)
	}

	oe, ok := a.(optionExecutor)
	if !ok {
		return nil, fmt.Errorf("--no-commit: %w", database.Unsupported(a.Dialect(), "execute without commit"))
	}
	return oe.ExecuteWithOptions(ctx, query, oracle.ExecOptions{AutoCommit: false}, params...)
}
