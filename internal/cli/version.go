package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Build metadata, overridden via ldflags by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(version)
			return
		}
		fmt.Print(buildInfo())
	},
}

// buildInfo renders the full multi-line version report.
func buildInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sshp %s\n", formatVersion(version))
	fmt.Fprintf(&b, "commit: %s\n", commit)
	fmt.Fprintf(&b, "built: %s\n", date)
	fmt.Fprintf(&b, "go: %s\n", runtime.Version())
	fmt.Fprintf(&b, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// formatVersion adds the conventional 'v' prefix to release versions while
// leaving "dev" builds alone.
func formatVersion(v string) string {
	if v == "" || v == "dev" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// SetVersionInfo installs build metadata from main's ldflags variables.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")

	rootCmd.AddCommand(versionCmd)
}
