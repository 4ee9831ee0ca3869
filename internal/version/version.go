package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/lexread/lexread/internal/version.Version=0.1.0"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// AppName is shown in window titles and CLI output.
const AppName = "LexRead"

var readBuildInfo = debug.ReadBuildInfo

// Info returns the multi-line version text printed by --version. Commit and
// build date fall back to the VCS stamp when not set by the linker.
func Info() string {
	commit, date := Commit, BuildDate
	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "unknown":
				commit = s.Value
			case s.Key == "vcs.time" && date == "unknown":
				date = s.Value
			}
		}
	}
	return fmt.Sprintf("lexread %s\ncommit: %s\nbuild: %s", Version, commit, date)
}
