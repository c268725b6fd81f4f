// Package version exposes the build identity of the module.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build identity. Overridden at link time:
//
//	go build -ldflags "-X .../pkg/version.Version=v1.2.0 -X .../pkg/version.Commit=abc1234"
var (
	// Version is the release version, or "dev" for untagged builds.
	Version = "dev"

	// Commit is the VCS revision the binary was built from.
	Commit = ""
)

// Info describes a build.
type Info struct {
	Version   string
	Commit    string
	GoVersion string
	Platform  string
}

// Get returns the build info of the running binary. When Commit was not
// set at link time it falls back to the revision embedded by the Go
// toolchain, if any.
func Get() Info {
	commit := Commit
	if commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
					break
				}
			}
		}
	}

	return Info{
		Version:   Version,
		Commit:    commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns a single-line description suitable for --version output.
func (i Info) String() string {
	if i.Commit != "" {
		rev := i.Commit
		if len(rev) > 12 {
			rev = rev[:12]
		}
		return fmt.Sprintf("%s (%s, %s, %s)", i.Version, rev, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("%s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}
