// Package version reports which build of billid is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags. When they are left
// unset, String falls back to the VCS stamp the Go toolchain embeds.
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version string (commit-hash based, no semver).
func String() string {
	info, _ := debug.ReadBuildInfo()
	return format(info)
}

func format(info *debug.BuildInfo) string {
	commit, built, modified := Commit, BuildTime, false
	if info != nil {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "unknown" {
					commit = s.Value
				}
			case "vcs.time":
				if built == "unknown" {
					built = s.Value
				}
			case "vcs.modified":
				modified = s.Value == "true" && Commit == "unknown"
			}
		}
	}

	if len(commit) > 7 {
		commit = commit[:7]
	}
	if modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("billid dev (commit: %s, built: %s)", commit, built)
}
