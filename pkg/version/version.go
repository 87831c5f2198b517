// Package version exposes the build version stamped in at link time:
//
//	go build -ldflags "-X github.com/rshade/postdeck/pkg/version.version=v1.2.3 \
//	  -X github.com/rshade/postdeck/pkg/version.gitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Name is the program name.
const Name = "postdeck"

// devVersion is reported by builds without a stamped version.
const devVersion = "0.0.0-dev"

//nolint:gochecknoglobals // set via -ldflags
var (
	version   = devVersion
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"    yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform"   yaml:"platform"`
	Release   bool   `json:"release"    yaml:"release"`
}

// GetVersion returns the build version without a leading "v".
func GetVersion() string {
	if v, err := semver.NewVersion(version); err == nil {
		return v.String()
	}
	return version
}

// IsRelease reports whether the build version is a valid semantic version
// without a prerelease suffix.
func IsRelease() bool {
	return isRelease(version)
}

func isRelease(raw string) bool {
	v, err := semver.StrictNewVersion(trimV(raw))
	return err == nil && v.Prerelease() == ""
}

func trimV(raw string) string {
	if len(raw) > 1 && raw[0] == 'v' {
		return raw[1:]
	}
	return raw
}

// Get returns the full build description.
func Get() Info {
	return Info{
		Version:   GetVersion(),
		GitCommit: gitCommit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Release:   IsRelease(),
	}
}

// String renders Info on one line.
func (i Info) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s, %s, %s)",
		Name, i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
