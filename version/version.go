// Package version holds the program identity used in user agents, commit
// messages and generated file footers.
package version

import (
	"fmt"
	"runtime/debug"
)

const (
	// Program is how the tool identifies itself everywhere.
	Program = "ghusk"

	// Version follows semantic versioning.
	Version = "0.1.0"
)

// Signature is the `program/version` string stamped on generated artifacts.
func Signature() string {
	return Program + "/" + Version
}

func FromBuildInfo() (version string) {
	version = Version

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	var vcs, revision, ts string

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		default:
			continue
		}
	}

	if revision == "" {
		return version
	}

	if ts == "" {
		return fmt.Sprintf("%s (built from %s revision %s)", version, vcs, revision)
	}

	return fmt.Sprintf("%s (built from %s revision %s at %s)", version, vcs, revision, ts)
}
