package provider

import (
	"net/url"
	"strings"

	"github.com/p5gen/p5gen/internal/template/model"
)

// IsRemoteSpec reports whether the input names a remote template rather than a
// built-in one. A string is remote if it starts with http(s):// or contains at
// least one '/' after stripping a protocol prefix.
func IsRemoteSpec(input string) bool {
	s := strings.TrimSpace(input)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return true
	}
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")
	return strings.Contains(s, "/")
}

// Normalize converts a template spec into its canonical TemplateRef form.
// Supported formats:
//   - https://github.com/owner/repo[.git]
//   - https://github.com/owner/repo/tree/<ref>/<path>
//   - https://github.com/owner/repo/blob/<ref>/<path>
//   - owner/repo[/sub/path]
//   - owner/repo#ref[/sub/path]
//   - owner/repo/sub/path#ref
//
// Normalization never fails: unparseable or non-GitHub inputs return ok=false
// and are carried unchanged by callers until fetch time.
func Normalize(input string) (model.TemplateRef, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return model.TemplateRef{}, false
	}

	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return normalizeURL(s)
	}
	return normalizeShorthand(s)
}

// NormalizeSpec returns the canonical string form of a spec, or the input
// unchanged when it is not recognizable. Idempotent on canonical strings.
func NormalizeSpec(input string) string {
	ref, ok := Normalize(input)
	if !ok {
		return input
	}
	return ref.String()
}

// normalizeURL handles full https:// (and http://) GitHub URLs.
func normalizeURL(s string) (model.TemplateRef, bool) {
	u, err := url.Parse(s)
	if err != nil {
		return model.TemplateRef{}, false
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return model.TemplateRef{}, false
	}

	segs := splitPath(strings.TrimSuffix(u.Path, ".git"))
	if len(segs) < 2 {
		return model.TemplateRef{}, false
	}

	ref := model.TemplateRef{
		Owner: segs[0],
		Repo:  segs[1],
		Ref:   model.DefaultRef,
	}

	switch {
	case len(segs) == 2:
		return ref, true
	case segs[2] == "tree" || segs[2] == "blob":
		if len(segs) < 4 {
			return model.TemplateRef{}, false
		}
		ref.Ref = segs[3]
		ref.Subpath = strings.Join(segs[4:], "/")
		return ref, true
	default:
		return model.TemplateRef{}, false
	}
}

// normalizeShorthand handles owner/repo forms, with an optional #ref placed
// either directly after the repo (owner/repo#ref/sub/path) or at the end
// (owner/repo/sub/path#ref).
func normalizeShorthand(s string) (model.TemplateRef, bool) {
	spec := s
	refPart := ""
	if idx := strings.Index(s, "#"); idx != -1 {
		spec = s[:idx]
		refPart = s[idx+1:]
	}

	segs := splitPath(spec)
	if len(segs) < 2 {
		return model.TemplateRef{}, false
	}

	ref := model.TemplateRef{
		Owner:   segs[0],
		Repo:    segs[1],
		Ref:     model.DefaultRef,
		Subpath: strings.Join(segs[2:], "/"),
	}

	if refPart != "" {
		refSegs := splitPath(refPart)
		if len(refSegs) == 0 {
			return model.TemplateRef{}, false
		}
		ref.Ref = refSegs[0]
		// owner/repo#ref/sub/path folds the segments after the ref into
		// the subpath.
		if len(refSegs) > 1 {
			rest := strings.Join(refSegs[1:], "/")
			if ref.Subpath == "" {
				ref.Subpath = rest
			} else {
				ref.Subpath += "/" + rest
			}
		}
	}

	return ref, true
}

// splitPath splits a forward-slash path, collapsing consecutive separators and
// dropping empty segments.
func splitPath(p string) []string {
	var segs []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}
