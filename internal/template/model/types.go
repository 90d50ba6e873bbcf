package model

// Special file and directory names used by p5gen.
const (
	// ProjectConfigFile is the per-project configuration file name.
	ProjectConfigFile = "p5gen.json"
	// IndexFile is the HTML entry point rewritten on version changes.
	IndexFile = "index.html"
	// LibDir is the directory holding locally delivered library files.
	LibDir = "lib"
	// TypesDir is the directory holding downloaded type definitions.
	TypesDir = "types"
)

// DefaultRef is the ref assumed when a template spec names none.
const DefaultRef = "main"

// TemplateRef is the canonical form of a remote template spec.
// Immutable once constructed by the normalizer.
type TemplateRef struct {
	// Owner is the repository owner.
	Owner string
	// Repo is the repository name.
	Repo string
	// Ref is the branch, tag, or commit SHA. Defaults to DefaultRef.
	Ref string
	// Subpath is the normalized forward-slash path within the repository.
	// Empty for whole-repo templates; may name a single file.
	Subpath string
}

// String returns the canonical spec string: owner/repo[/subpath][#ref].
// Normalizing the result yields an identical TemplateRef.
func (r TemplateRef) String() string {
	s := r.Owner + "/" + r.Repo
	if r.Subpath != "" {
		s += "/" + r.Subpath
	}
	if r.Ref != "" && r.Ref != DefaultRef {
		s += "#" + r.Ref
	}
	return s
}

// DeliveryMode selects where the generated project loads p5.js from.
type DeliveryMode string

const (
	// DeliveryCDN serves p5.js from a public CDN.
	DeliveryCDN DeliveryMode = "cdn"
	// DeliveryLocal serves p5.js from a downloaded copy under lib/.
	DeliveryLocal DeliveryMode = "local"
)

// SketchMode selects the p5.js API surface the project is typed against.
type SketchMode string

const (
	// ModeGlobal exposes p5 functions as globals (setup/draw at top level).
	ModeGlobal SketchMode = "global"
	// ModeInstance scopes p5 to an explicit instance.
	ModeInstance SketchMode = "instance"
)
