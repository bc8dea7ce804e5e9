// Package evanesce carries the release version shared by the CLI and the
// library packages.
package evanesce

import (
	_ "embed"
	"regexp"
	"strings"
)

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release in SemVer form, without a leading v.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag is Version with the git tag prefix.
func VersionTag() string {
	return "v" + Version()
}

func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
