// Package version holds build metadata injected at link time:
//
//	go build -ldflags "-X github.com/Sumatoshi-tech/hesh/pkg/version.Version=v1.2.3"
package version

import "runtime/debug"

// Build metadata.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion fills Version from the module build info when it was not
// set at link time (for example after go install).
func InitBinaryVersion() {
	if Version != "dev" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return
	}

	Version = info.Main.Version
}
