// Package typedefs decides which TypeScript definition artifact matches a
// resolved p5.js version and downloads it. Two versioning universes exist:
// the legacy @types/p5 package, versioned independently, and type definitions
// bundled with p5 itself from 2.0.2 onward.
package typedefs

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SemanticVersion is a strictly parsed major.minor.patch[-prerelease] version.
// The prerelease suffix is retained but ignored by all matching logic.
type SemanticVersion struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// String renders the version back to its canonical form.
func (v SemanticVersion) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Base renders major.minor.patch without the prerelease suffix.
func (v SemanticVersion) Base() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// InvalidVersionError reports a version string that is not well-formed
// major.minor.patch[-prerelease].
type InvalidVersionError struct {
	// Input is the rejected version string.
	Input string
	// Cause is the underlying parse error, if any.
	Cause error
}

// Error implements the error interface.
func (e *InvalidVersionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid version '%s': %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("invalid version '%s': expected major.minor.patch[-prerelease]", e.Input)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *InvalidVersionError) Unwrap() error {
	return e.Cause
}

// ParseVersion parses a version string, accepting only the exact
// major.minor.patch[-prerelease] form. No leading v, no partial versions, no
// build metadata.
func ParseVersion(input string) (SemanticVersion, error) {
	v, err := semver.StrictNewVersion(input)
	if err != nil {
		return SemanticVersion{}, &InvalidVersionError{Input: input, Cause: err}
	}
	if v.Metadata() != "" {
		return SemanticVersion{}, &InvalidVersionError{Input: input}
	}
	return SemanticVersion{
		Major:      int(v.Major()),
		Minor:      int(v.Minor()),
		Patch:      int(v.Patch()),
		Prerelease: v.Prerelease(),
	}, nil
}
