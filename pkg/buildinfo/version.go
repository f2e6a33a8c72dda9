// Package buildinfo reports which kitchenrun build is running.
//
// Release builds stamp the values with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/kitchenrun/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/kitchenrun/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/kitchenrun
//
// Unstamped builds fall back to what the Go toolchain recorded: the module
// version for `go install`, and the VCS revision for builds from a checkout.
package buildinfo

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Stamped at link time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info is the resolved build description.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit,omitempty"`
	Date     string `json:"date,omitempty"`
	Modified bool   `json:"modified,omitempty"`
}

var (
	once     sync.Once
	resolved Info
)

// Get returns the build description, merging ldflags values with the
// toolchain's build info. Stamped values win.
func Get() Info {
	once.Do(func() {
		resolved = resolve(Version, Commit, Date, debug.ReadBuildInfo)
	})
	return resolved
}

func resolve(version, commit, date string, read func() (*debug.BuildInfo, bool)) Info {
	info := Info{Version: version, Commit: commit, Date: date}
	bi, ok := read()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// ShortCommit is the first 12 characters of the commit, if known.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 12 {
		return i.Commit[:12]
	}
	return i.Commit
}

// CacheScope names the build for cache keys. Development builds add the
// commit so two checkouts never share rendered artifacts.
func (i Info) CacheScope() string {
	if i.Version != "dev" || i.Commit == "" {
		return i.Version
	}
	scope := i.Version + "-" + i.ShortCommit()
	if i.Modified {
		scope += "-dirty"
	}
	return scope
}

// Template returns the version template for cobra.
func Template() string {
	i := Get()
	s := "{{.Name}} " + i.Version
	if c := i.ShortCommit(); c != "" {
		s += fmt.Sprintf(" (%s", c)
		if i.Modified {
			s += ", modified"
		}
		s += ")"
	}
	if i.Date != "" {
		s += " built " + i.Date
	}
	return s + "\n"
}
