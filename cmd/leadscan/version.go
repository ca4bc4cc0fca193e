package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags, with
// debug.ReadBuildInfo as the fallback for plain "go install" builds.
var (
	version = ""
	commit  = ""
	date    = ""
)

const shortCommitLen = 7

// buildDetails resolves the version triple. Each ldflags value wins
// when set; otherwise the module version and the vcs.revision and
// vcs.time stamps from the embedded build info fill the gaps.
func buildDetails() (ver, rev, when string) {
	ver, rev, when = version, commit, date

	if info, ok := debug.ReadBuildInfo(); ok {
		if ver == "" {
			ver = info.Main.Version
		}
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if rev == "" {
					rev = setting.Value
				}
			case "vcs.time":
				if when == "" {
					when = setting.Value
				}
			}
		}
	}

	if ver == "" {
		ver = "(devel)"
	}
	if len(rev) > shortCommitLen {
		rev = rev[:shortCommitLen]
	}
	if rev == "" {
		rev = "unknown"
	}
	if when == "" {
		when = "unknown"
	}
	return ver, rev, when
}

// getVersion returns the version string for the root command.
func getVersion() string {
	ver, _, _ := buildDetails()
	return ver
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of leadscan.`,
		Run: func(cmd *cobra.Command, _ []string) {
			ver, rev, when := buildDetails()
			fmt.Fprintf(cmd.OutOrStdout(), "leadscan version %s\n", ver)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", rev)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", when)
		},
	}
}
