// Package buildtime exposes the version and git revision baked into a
// glyco binary. The VERSION and revision files are stamped by the
// release build; development builds carry the placeholder values.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// VERSION of this glyco build.
func VERSION() string {
	return version
}

// GIT_REVISION the build was cut from.
func GIT_REVISION() string {
	return revision
}

// VersionString is what `glyco version` prints.
func VersionString() string {
	return version + " (commit: " + revision + ")"
}
