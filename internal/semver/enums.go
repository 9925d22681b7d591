// Package semver increments semantic versions by bump kind.
package semver

import "fmt"

// VersionField represents which field of a semantic version to increment.
type VersionField int

const (
	VersionFieldNone VersionField = iota
	VersionFieldPatch
	VersionFieldMinor
	VersionFieldMajor
)

func (f VersionField) String() string {
	switch f {
	case VersionFieldNone:
		return "None"
	case VersionFieldPatch:
		return "Patch"
	case VersionFieldMinor:
		return "Minor"
	case VersionFieldMajor:
		return "Major"
	default:
		return "Unknown"
	}
}

// ParseVersionField maps a bump kind name to a VersionField. Names are
// matched exactly; VersionFieldNone is never returned without an error.
func ParseVersionField(kind string) (VersionField, error) {
	switch kind {
	case "major":
		return VersionFieldMajor, nil
	case "minor":
		return VersionFieldMinor, nil
	case "patch":
		return VersionFieldPatch, nil
	default:
		return VersionFieldNone, fmt.Errorf("unknown bump kind %q: expected major, minor, or patch", kind)
	}
}
