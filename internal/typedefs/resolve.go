package typedefs

import (
	"fmt"
)

// ResolveLegacyVersion picks the @types/p5 version that best matches a target
// p5 version. Preference order:
//
//  1. exact major.minor match, highest patch;
//  2. same major, minimum absolute minor distance, ties toward the higher
//     minor, then highest patch;
//  3. no same-major candidate at all: nearest by (major distance, minor
//     distance), ties toward the higher version, then highest patch.
//
// Tier 3 never occurs against the published @types/p5 history, but the
// resolver must not crash, so a deterministic raw-distance rule applies.
// Candidates that fail strict parsing are skipped. An empty candidate list is
// the only error.
func ResolveLegacyVersion(target SemanticVersion, available []string) (string, error) {
	var candidates []SemanticVersion
	for _, s := range available {
		v, err := ParseVersion(s)
		if err != nil {
			continue
		}
		candidates = append(candidates, v)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no usable @types versions among %d candidates", len(available))
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if closerLegacyMatch(target, c, best) {
			best = c
		}
	}
	return best.Base(), nil
}

// closerLegacyMatch reports whether a beats b as a legacy-types match for
// target, applying the tier rules above. Prerelease suffixes never influence
// matching.
func closerLegacyMatch(target, a, b SemanticVersion) bool {
	majorA, majorB := absDiff(a.Major, target.Major), absDiff(b.Major, target.Major)
	if majorA != majorB {
		return majorA < majorB
	}

	minorA, minorB := absDiff(a.Minor, target.Minor), absDiff(b.Minor, target.Minor)
	if minorA != minorB {
		return minorA < minorB
	}
	// Equidistant minors break toward the higher one.
	if a.Minor != b.Minor {
		return a.Minor > b.Minor
	}

	// Same major.minor: prefer the exact patch's neighborhood by taking the
	// highest available patch.
	return a.Patch > b.Patch
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
