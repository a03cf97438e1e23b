package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
)

// Version is a comparable (major, minor) pair parsed from a registry
// "major.minor" version string.
type Version struct {
	Major uint64
	Minor uint64
}

// ParseVersion parses a version string such as "4.3" into a Version.
func ParseVersion(s string) (Version, error) {
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, errors.Wrapf(err, "invalid version %q", s)
	}
	return Version{Major: sv.Major(), Minor: sv.Minor()}, nil
}

// Compare returns -1, 0 or 1 depending on whether v is older than, equal to
// or newer than o.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	}
	return 0
}

// AtMost reports whether v <= o.
func (v Version) AtMost(o Version) bool {
	return v.Compare(o) <= 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
