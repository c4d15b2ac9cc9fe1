package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Build-time variables injected via ldflags:
//
//	go build -ldflags "-X clawcost/internal/version.Version=v1.2.0 -X clawcost/internal/version.GitCommit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo returns detailed build information
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Full returns the version with a short commit hash when one is known
func Full() string {
	v := Version
	if c := shortCommit(); c != "" && !strings.Contains(v, c) {
		v += fmt.Sprintf(" (%s)", c)
	}
	return v
}

// GetBuildInfo returns structured build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func shortCommit() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return ""
	}
	if len(GitCommit) > 7 {
		return GitCommit[:7]
	}
	return GitCommit
}
