package typedefs

import "fmt"

// StrategyKind distinguishes the two type-definition versioning universes.
type StrategyKind int

const (
	// StrategyLegacy draws from the independently-versioned @types/p5 package.
	StrategyLegacy StrategyKind = iota
	// StrategyBundled uses the definitions shipped inside the p5 package at
	// the exact resolved version.
	StrategyBundled
)

// String returns the string representation of the strategy kind.
func (k StrategyKind) String() string {
	switch k {
	case StrategyLegacy:
		return "legacy"
	case StrategyBundled:
		return "bundled"
	default:
		return "unknown"
	}
}

// TypesStrategy is a decision record, recomputed from a version each time and
// never persisted.
type TypesStrategy struct {
	// Kind identifies the versioning universe to draw from.
	Kind StrategyKind
	// Reason records why the decision fell the way it did.
	Reason string
}

// StrategyFor decides which universe serves a resolved p5 version. Bundled
// definitions were first published with 2.0.2: every 1.x release and the two
// 2.0 releases before that point stay on @types/p5.
func StrategyFor(v SemanticVersion) TypesStrategy {
	switch {
	case v.Major <= 1:
		return TypesStrategy{
			Kind:   StrategyLegacy,
			Reason: fmt.Sprintf("p5 %s predates bundled type definitions", v.Base()),
		}
	case v.Major == 2 && (v.Minor == 0 && v.Patch < 2):
		return TypesStrategy{
			Kind:   StrategyLegacy,
			Reason: fmt.Sprintf("bundled type definitions were not published for %s", v.Base()),
		}
	default:
		return TypesStrategy{
			Kind:   StrategyBundled,
			Reason: fmt.Sprintf("p5 %s ships its own type definitions", v.Base()),
		}
	}
}
