package manifest

import (
	"strings"

	"golang.org/x/mod/semver"
)

// SemVer returns the control version in canonical semantic version form
// ("v1.2.0"), or "" when the manifest version is missing or malformed.
func (c *Control) SemVer() string {
	if c == nil {
		return ""
	}
	return canonicalVersion(c.Version)
}

// VersionAtLeast reports whether the control version is min or newer. It is
// false when either version is not a semantic version.
func (c *Control) VersionAtLeast(min string) bool {
	current := c.SemVer()
	floor := canonicalVersion(min)
	if current == "" || floor == "" {
		return false
	}
	return semver.Compare(current, floor) >= 0
}

func canonicalVersion(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "v") {
		trimmed = "v" + trimmed
	}
	return semver.Canonical(trimmed)
}
