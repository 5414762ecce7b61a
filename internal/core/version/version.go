// Package version reports what build of the service is running
package version

import (
	"runtime"
	"runtime/debug"
)

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Set via -ldflags "-X 'animefinder/internal/core/version.version=v0.1.0'
// -X 'animefinder/internal/core/version.commit=abcd' -X 'animefinder/internal/core/version.date=2026-10-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information
// commit and date fall back to the VCS stamp go build embeds when ldflags left them unset
func Info() BuildInfo {
	bi := BuildInfo{
		Service: "animefinder-api",
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && bi.Commit == "none":
				bi.Commit = s.Value
			case s.Key == "vcs.time" && bi.Date == "unknown":
				bi.Date = s.Value
			}
		}
	}
	return bi
}
