// Package version exposes the build identity of the contribplot binary.
package version

import (
	"runtime/debug"
)

const (
	unknown      = "<unknown>"
	develVersion = "dev"
	shortHashLen = 12
)

// Set at link time with -ldflags "-X .../pkg/version.Version=...".
var (
	Version = develVersion
	Commit  = unknown
	Date    = unknown
)

// InitBinaryVersion fills Commit and Date from the embedded VCS build
// settings when they were not set at link time.
func InitBinaryVersion() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == develVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if Commit == unknown {
				Commit = shorten(setting.Value)
			}
		case "vcs.time":
			if Date == unknown {
				Date = setting.Value
			}
		}
	}
}

func shorten(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}

	return hash
}
