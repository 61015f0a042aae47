// Package version reports which build of datatune is running.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/datatune/datatune/version.Version=$(git describe --dirty)"
var Version string

// hashLen is the length of an abbreviated commit hash.
const hashLen = 7

// Hash is the abbreviated VCS revision the binary was built from, suffixed
// with -dirty for a modified tree, or "" when unknown.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return revision(info.Settings)
}()

// VersionOrHash is Version when set, Hash otherwise.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func revision(settings []debug.BuildSetting) string {
	var rev string
	modified := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if rev == "" {
		return ""
	}
	if len(rev) > hashLen {
		rev = rev[:hashLen]
	}
	if modified {
		rev += "-dirty"
	}
	return rev
}
