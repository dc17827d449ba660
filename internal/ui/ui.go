// Package ui renders command output: row tables, status lines, SQL previews
// and confirmation prompts.
package ui

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/satishbabariya/sqladmin/internal/core/query/domain"
)

var (
	// Out receives normal output, Err receives error lines.
	Out io.Writer = os.Stdout
	Err io.Writer = os.Stderr

	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	keyColor = color.New(color.FgCyan, color.Bold)
)

// BlobMarker replaces binary values in tables.
const BlobMarker = "<binary>"

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	fmt.Fprintln(Out, SuccessStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	fmt.Fprintln(Err, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	fmt.Fprintln(Out, WarningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints a secondary message
func PrintInfo(format string, args ...interface{}) {
	fmt.Fprintln(Out, SecondaryStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintKV prints "key: value" with a colored key.
func PrintKV(key string, value interface{}) {
	fmt.Fprintf(Out, "%s %v\n", keyColor.Sprint(key+":"), value)
}

// FormatValue renders a row value for display.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return BlobMarker
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// TableData converts rows into pterm table data. When columns is empty the
// header is the sorted union of the rows' keys.
func TableData(columns []string, rows []domain.Row) pterm.TableData {
	if len(columns) == 0 {
		seen := map[string]bool{}
		for _, row := range rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					columns = append(columns, k)
				}
			}
		}
		sort.Strings(columns)
	}

	data := pterm.TableData{columns}
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = FormatValue(row[col])
		}
		data = append(data, line)
	}
	return data
}

// PrintRows prints rows as a table followed by a row count.
func PrintRows(columns []string, rows []domain.Row) error {
	if len(rows) == 0 {
		PrintInfo("(0 rows)")
		return nil
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(TableData(columns, rows)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, out)
	PrintInfo("(%d rows)", len(rows))
	return nil
}

// SQLMarkdown formats a statement and its parameters as markdown.
func SQLMarkdown(query string, args []interface{}) string {
	var sb strings.Builder
	sb.WriteString("```sql\n")
	sb.WriteString(query)
	sb.WriteString("\n```\n")

	if len(args) > 0 {
		sb.WriteString("\n| # | value |\n|---|---|\n")
		for i, a := range args {
			name, v := Param(i, a)
			fmt.Fprintf(&sb, "| %s | `%v` |\n", name, v)
		}
	}
	return sb.String()
}

// Param returns the display name and value of the i-th bound argument.
func Param(i int, arg interface{}) (string, interface{}) {
	if na, ok := arg.(sql.NamedArg); ok {
		return na.Name, na.Value
	}
	return strconv.Itoa(i + 1), arg
}

// PrintSQL renders a statement and its parameters with glamour.
func PrintSQL(query string, args []interface{}) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(SQLMarkdown(query, args))
	if err != nil {
		return err
	}

	fmt.Fprint(Out, out)
	return nil
}

// Confirm asks a yes/no question. Replaced in tests.
var Confirm = func(message string) (bool, error) {
	ok := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
