// Package htmlpage locates and rewrites the p5.js script reference inside a
// project's HTML entry point without a templating pass, leaving unrelated
// document structure alone.
package htmlpage

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/p5gen/p5gen/internal/template/model"
)

// CDNProvider identifies a CDN URL convention for the p5 script.
type CDNProvider string

const (
	// ProviderJSDelivr is the default provider.
	ProviderJSDelivr CDNProvider = "jsdelivr"
	// ProviderCDNJS is Cloudflare's cdnjs.
	ProviderCDNJS CDNProvider = "cdnjs"
	// ProviderUnpkg is unpkg.com.
	ProviderUnpkg CDNProvider = "unpkg"
)

// LocalVersion is the version reported for a locally delivered script.
const LocalVersion = "local"

// PlaceholderComment is the sentinel comment replaced by a script element when
// a template marks its insertion point explicitly. Matched on trimmed text.
const PlaceholderComment = "p5.js library"

// Recognized src shapes. Matching is ordered per element, but the first
// matching element in document order wins regardless of which shape hit.
var (
	jsdelivrPattern = regexp.MustCompile(`^https://cdn\.jsdelivr\.net/npm/p5@([^/]+)/lib/p5(\.min)?\.js$`)
	cdnjsPattern    = regexp.MustCompile(`^https://cdnjs\.cloudflare\.com/ajax/libs/p5\.js/([^/]+)/p5(\.min)?\.js$`)
	unpkgPattern    = regexp.MustCompile(`^https://unpkg\.com/p5@([^/]+)/lib/p5(\.min)?\.js$`)
	localPattern    = regexp.MustCompile(`^(?:\./)?lib/p5(\.min)?\.js$`)
)

// ScriptRef is a transient handle to the detected p5 script element. It is
// valid only while the owning document is being mutated.
type ScriptRef struct {
	// Node is the matched <script> element.
	Node *html.Node
	// Version is the version in the src URL, or "local".
	Version string
	// Minified reports whether the src referenced the .min build.
	Minified bool
	// Provider is the CDN the src pointed at; empty for local delivery.
	Provider CDNProvider
}

// Preferences carries formatting defaults applied when no prior script
// reference exists to inherit from.
type Preferences struct {
	// Provider is the CDN to use; defaults to jsdelivr when empty.
	Provider CDNProvider
	// Minified selects the .min build.
	Minified bool
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}
	return doc, nil
}

// FindScript scans every <script> element's src in document order and returns
// the first that matches a recognized p5 URL shape, or nil.
func FindScript(doc *html.Node) *ScriptRef {
	for _, n := range elements(doc, "script") {
		src, ok := attr(n, "src")
		if !ok {
			continue
		}
		if ref := matchSrc(n, src); ref != nil {
			return ref
		}
	}
	return nil
}

// matchSrc classifies one src value against the recognized URL shapes.
func matchSrc(n *html.Node, src string) *ScriptRef {
	if m := jsdelivrPattern.FindStringSubmatch(src); m != nil {
		return &ScriptRef{Node: n, Version: m[1], Minified: m[2] != "", Provider: ProviderJSDelivr}
	}
	if m := cdnjsPattern.FindStringSubmatch(src); m != nil {
		return &ScriptRef{Node: n, Version: m[1], Minified: m[2] != "", Provider: ProviderCDNJS}
	}
	if m := unpkgPattern.FindStringSubmatch(src); m != nil {
		return &ScriptRef{Node: n, Version: m[1], Minified: m[2] != "", Provider: ProviderUnpkg}
	}
	if m := localPattern.FindStringSubmatch(src); m != nil {
		return &ScriptRef{Node: n, Version: LocalVersion, Minified: m[1] != ""}
	}
	return nil
}

// UpdateScript rewrites or inserts the p5 script reference for the given
// version and delivery mode. Returns true iff the document was mutated.
//
// An existing reference is rewritten in place, preserving its minified choice
// and, when staying on CDN delivery, its provider. Otherwise the placeholder
// comment under <head> is replaced; otherwise a new <script> becomes head's
// first child. A document with no <head> is left untouched.
func UpdateScript(doc *html.Node, version string, delivery model.DeliveryMode, prefs Preferences) bool {
	provider := prefs.Provider
	if provider == "" {
		provider = ProviderJSDelivr
	}
	minified := prefs.Minified

	if existing := FindScript(doc); existing != nil {
		minified = existing.Minified
		if existing.Provider != "" {
			provider = existing.Provider
		}
		setAttr(existing.Node, "src", ScriptURL(version, delivery, provider, minified))
		return true
	}

	src := ScriptURL(version, delivery, provider, minified)

	head := firstElement(doc, "head")
	if head == nil {
		return false
	}

	if comment := findPlaceholder(head); comment != nil {
		script := newScriptNode(src)
		comment.Parent.InsertBefore(script, comment)
		comment.Parent.RemoveChild(comment)
		return true
	}

	script := newScriptNode(src)
	if head.FirstChild != nil {
		head.InsertBefore(script, head.FirstChild)
	} else {
		head.AppendChild(script)
	}
	return true
}

// ScriptURL builds the script src for a version, delivery mode, and provider.
// Local delivery always yields a relative lib/ path with no provider
// formatting.
func ScriptURL(version string, delivery model.DeliveryMode, provider CDNProvider, minified bool) string {
	min := ""
	if minified {
		min = ".min"
	}
	if delivery == model.DeliveryLocal {
		return fmt.Sprintf("lib/p5%s.js", min)
	}
	switch provider {
	case ProviderCDNJS:
		return fmt.Sprintf("https://cdnjs.cloudflare.com/ajax/libs/p5.js/%s/p5%s.js", version, min)
	case ProviderUnpkg:
		return fmt.Sprintf("https://unpkg.com/p5@%s/lib/p5%s.js", version, min)
	default:
		return fmt.Sprintf("https://cdn.jsdelivr.net/npm/p5@%s/lib/p5%s.js", version, min)
	}
}

// Render serializes the document with a literal <!DOCTYPE html> line ahead of
// the markup. Any doctype node the parser kept is dropped first so the line is
// never doubled.
func Render(w io.Writer, doc *html.Node) error {
	for c := doc.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.DoctypeNode {
			doc.RemoveChild(c)
		}
		c = next
	}
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render HTML document: %w", err)
	}
	return nil
}

// findPlaceholder returns the first comment under root whose trimmed text is
// the placeholder sentinel.
func findPlaceholder(root *html.Node) *html.Node {
	stack := []*html.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.CommentNode && strings.TrimSpace(n.Data) == PlaceholderComment {
			return n
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return nil
}

// elements collects all elements with the given tag in document order. The
// walk is an explicit stack, not recursion: documents are caller-supplied and
// may nest arbitrarily deep.
func elements(doc *html.Node, tag string) []*html.Node {
	var out []*html.Node
	stack := []*html.Node{doc}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			stack = append(stack, c)
		}
	}
	return out
}

// firstElement returns the first element with the given tag, or nil.
func firstElement(doc *html.Node, tag string) *html.Node {
	els := elements(doc, tag)
	if len(els) == 0 {
		return nil
	}
	return els[0]
}

// attr fetches an attribute value from an element.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr sets or adds an attribute on an element.
func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// newScriptNode builds a <script src=...></script> element.
func newScriptNode(src string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
}
