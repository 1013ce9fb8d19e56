// Package buildinfo reports which thrackle build is running.
//
// Release builds stamp the variables with the linker:
//
//	go build -ldflags "-X github.com/matzehuels/thrackle/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/thrackle/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/thrackle/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install carry no stamp; [Get] then falls back to the
// module version and VCS settings the go command records.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Linker-stamped values. The zero stamps are "dev", "none" and "unknown".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info identifies a build. The health endpoint serves it as JSON.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

var readBuildInfo = debug.ReadBuildInfo

// Get returns the linker stamp, filling unstamped fields from the embedded
// module build information when there is any.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// String formats the build on one line, e.g. "v0.3.0 (1a2b3c4, 2026-01-02T15:04:05Z)".
func String() string {
	i := Get()
	return fmt.Sprintf("%s (%s, %s)", i.Version, i.Commit, i.Date)
}

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
