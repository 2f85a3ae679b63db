// Package version provides CMSIS-SVD schema version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Latest is the newest schema version this module understands. Generated
// documents default to it when the model carries no version.
const Latest = "1.3"

// SchemaVersion represents a parsed "major.minor" schema version.
type SchemaVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (SchemaVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return SchemaVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return SchemaVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v SchemaVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v SchemaVersion) Compatible(other SchemaVersion) bool {
	return v.Major == other.Major
}

// Supported returns the schema versions this module has been written
// against, oldest first.
func Supported() []string {
	return []string{"1.0", "1.1", "1.2", "1.3"}
}

// IsSupported reports whether s names a supported schema version.
func IsSupported(s string) bool {
	for _, v := range Supported() {
		if v == s {
			return true
		}
	}
	return false
}
