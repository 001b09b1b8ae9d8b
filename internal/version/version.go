// Package version provides version information for railsql.
package version

import "runtime/debug"

// Version and Commit are set at build time with -ldflags "-X".
var (
	Version = "development"
	Commit  = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// String returns the version, with the commit appended when known. Builds
// without ldflags fall back to the module version and VCS revision that
// the Go toolchain embeds.
func String() string {
	v, c := Version, Commit
	if info, ok := readBuildInfo(); ok {
		if v == "development" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
		if c == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					c = s.Value[:min(len(s.Value), 7)]
				}
			}
		}
	}
	if c == "unknown" {
		return v
	}
	return v + "+" + c
}
