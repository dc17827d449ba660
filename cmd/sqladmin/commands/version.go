package commands

import (
	"fmt"
	"runtime"

	"github.com/satishbabariya/sqladmin/internal/ui"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display version information for the sqladmin CLI",
		Run: func(cmd *cobra.Command, args []string) {
			printVersionInfo()
		},
	}
}

func printVersionInfo() {
	fmt.Fprintf(ui.Out, "sqladmin version %s\n", Version)
	fmt.Fprintf(ui.Out, "  Git Commit: %s\n", GitCommit)
	fmt.Fprintf(ui.Out, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(ui.Out, "  Go Version: %s\n", runtime.Version())
	fmt.Fprintf(ui.Out, "  OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
