package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"transcript-sheets/internal/config"
)

// set with -ldflags "-X transcript-sheets/cmd/tsheets/cmd/version.version=..."
var version = config.DefaultVersion

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tsheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "tsheets %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return nil
	},
}
