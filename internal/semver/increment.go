package semver

import (
	"errors"
	"fmt"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// ErrInvalidVersion is returned when the version to increment is not a valid
// semantic version.
var ErrInvalidVersion = errors.New("invalid semantic version")

// Increment returns the next version for the given bump kind.
//
// It follows npm's semver.inc for major, minor and patch: a pre-release whose
// lower segments are already zero is released instead of bumped again
// (1.0.0-rc.1 major -> 1.0.0, 1.2.0-beta minor -> 1.2.0, 1.2.3-beta patch -> 1.2.3).
// A leading "v" or "=" is accepted; partial versions like "1.2" are not.
func Increment(version, kind string) (string, error) {
	field, err := ParseVersionField(kind)
	if err != nil {
		return "", err
	}

	v, err := parseStrict(version)
	if err != nil {
		return "", err
	}

	next := incrementField(v, field)
	return next.String(), nil
}

func parseStrict(version string) (*mmsemver.Version, error) {
	s := strings.TrimSpace(version)
	s = strings.TrimLeft(s, "=v")
	v, err := mmsemver.StrictNewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidVersion, version, err)
	}
	return v, nil
}

func incrementField(v *mmsemver.Version, field VersionField) mmsemver.Version {
	pre := v.Prerelease() != ""

	switch field {
	case VersionFieldMajor:
		if pre && v.Minor() == 0 && v.Patch() == 0 {
			return *mmsemver.New(v.Major(), 0, 0, "", "")
		}
		return v.IncMajor()
	case VersionFieldMinor:
		if pre && v.Patch() == 0 {
			return *mmsemver.New(v.Major(), v.Minor(), 0, "", "")
		}
		return v.IncMinor()
	case VersionFieldPatch:
		// IncPatch already drops the pre-release without bumping.
		return v.IncPatch()
	default:
		return *mmsemver.New(v.Major(), v.Minor(), v.Patch(), v.Prerelease(), "")
	}
}
