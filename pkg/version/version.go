// Package version exposes errshape build metadata.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build metadata, overridden at link time with
// -ldflags "-X github.com/Sumatoshi-tech/errshape/pkg/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const shortCommitLen = 12

// InitBinaryVersion fills unset build metadata from the embedded module build
// info, which is present for `go install` builds.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	apply(info)
}

func apply(info *debug.BuildInfo) {
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == "none" {
				Commit = setting.Value
				if len(Commit) > shortCommitLen {
					Commit = Commit[:shortCommitLen]
				}
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = setting.Value
			}
		}
	}
}

// String formats the metadata as printed by `errshape version`.
func String() string {
	return fmt.Sprintf("errshape %s (commit: %s, built: %s)", Version, Commit, Date)
}
