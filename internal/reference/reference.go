// Package reference parses $ref strings and rewrites references into a
// shared definitions file so they point inside the bundled document.
//
// A reference has the form
//
//	[file] "#" pointer
//
// where file is a relative or absolute location of another document and
// pointer is a JSON pointer. An empty file part makes the reference internal.
package reference

import (
	"path/filepath"
	"strings"

	"github.com/unihub/apispec/internal/document"
)

// Key is the mapping key that marks a reference node.
const Key = "$ref"

// SchemasPointer is the pointer prefix of component schemas.
const SchemasPointer = "/components/schemas/"

// Scheme classifies a reference by where its target lives.
type Scheme int

const (
	// Internal references point into the same document.
	Internal Scheme = iota + 1
	// External references name another file.
	External
)

func (s Scheme) String() string {
	switch s {
	case Internal:
		return "internal"
	case External:
		return "external"
	default:
		return "unknown"
	}
}

// Ref is a parsed reference string.
type Ref struct {
	Scheme  Scheme
	File    string
	Pointer string
}

// Parse splits a reference into its file and pointer parts. A reference
// without "#" is a whole-file external reference with an empty pointer.
func Parse(s string) Ref {
	file, pointer, _ := strings.Cut(s, "#")
	r := Ref{File: file, Pointer: pointer, Scheme: External}
	if file == "" {
		r.Scheme = Internal
	}
	return r
}

// String reassembles the reference.
func (r Ref) String() string {
	return r.File + "#" + r.Pointer
}

// Name returns the final segment of the pointer.
func (r Ref) Name() string {
	return r.Pointer[strings.LastIndex(r.Pointer, "/")+1:]
}

// Schema returns the internal reference to a component schema.
func Schema(name string) string {
	return "#" + SchemasPointer + name
}

// Rewriter turns references to schemas in a shared file into internal
// references to the same schema name.
type Rewriter struct {
	// fileSuffix is what an external file part must end with, e.g.
	// "../shared.yaml" for modules that live one directory below it.
	fileSuffix string
}

// NewRewriter builds a Rewriter for the shared file as modules see it.
// Only the base name of sharedFile is significant; modules are expected to
// reach it through "../".
func NewRewriter(sharedFile string) *Rewriter {
	return &Rewriter{fileSuffix: "../" + filepath.Base(sharedFile)}
}

// Matches reports whether r points at a schema in the shared file.
func (rw *Rewriter) Matches(r Ref) bool {
	return r.Scheme == External &&
		strings.HasSuffix(r.File, rw.fileSuffix) &&
		strings.HasPrefix(r.Pointer, SchemasPointer)
}

// RewriteRef returns the internal form of s when it targets a shared schema.
func (rw *Rewriter) RewriteRef(s string) (string, bool) {
	r := Parse(s)
	if !rw.Matches(r) {
		return s, false
	}
	return Schema(r.Name()), true
}

// Rewrite returns a copy of the tree with every matching reference node
// replaced by {"$ref": "#/components/schemas/<Name>"}. Keys next to a
// matching $ref are dropped. All other nodes are copied unchanged.
func (rw *Rewriter) Rewrite(n document.Node) document.Node {
	return document.Rewrite(n, func(m *document.Mapping) (document.Node, bool) {
		v, ok := m.Get(Key)
		if !ok {
			return nil, false
		}
		s, ok := v.(*document.Scalar)
		if !ok || s.Tag != document.TagStr {
			return nil, false
		}
		internal, ok := rw.RewriteRef(s.Value)
		if !ok {
			return nil, false
		}
		return document.Map(document.Pair{Key: Key, Value: document.Str(internal)}), true
	})
}

// Externals returns every external reference string in the tree, in
// document order.
func Externals(n document.Node) []string {
	var refs []string
	var walk func(document.Node)
	walk = func(n document.Node) {
		switch x := n.(type) {
		case *document.Mapping:
			for k, v := range x.All() {
				if s, ok := v.(*document.Scalar); ok && k == Key && s.Tag == document.TagStr {
					if Parse(s.Value).Scheme == External {
						refs = append(refs, s.Value)
					}
					continue
				}
				walk(v)
			}
		case *document.Sequence:
			for _, item := range x.Items {
				walk(item)
			}
		}
	}
	walk(n)
	return refs
}
