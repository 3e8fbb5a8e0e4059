package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.yaml.in/yaml/v4"
)

const (
	tagMerge = "!!merge"

	// maxDepth bounds alias expansion so a self-referencing anchor fails
	// instead of recursing forever.
	maxDepth = 512
)

// Decode parses YAML (or JSON, which is accepted as YAML) into a tree.
// An empty input decodes to an empty mapping. Aliases are expanded and
// merge keys are applied, so the result never shares structure.
func Decode(data []byte) (Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return NewMapping(), nil
	}
	return FromYAML(&root)
}

// FromYAML converts a yaml.Node into a tree.
func FromYAML(n *yaml.Node) (Node, error) {
	return fromYAML(n, 0)
}

func fromYAML(n *yaml.Node, depth int) (Node, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("line %d: nesting exceeds %d levels", n.Line, maxDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMapping(), nil
		}
		return fromYAML(n.Content[0], depth+1)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		return fromYAML(n.Alias, depth+1)

	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == TagNull {
			return Null(), nil
		}
		return &Scalar{Tag: tag, Value: n.Value}, nil

	case yaml.SequenceNode:
		seq := &Sequence{Items: make([]Node, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := fromYAML(c, depth+1)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, item)
		}
		return seq, nil

	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.ShortTag() == tagMerge {
				if err := mergeInto(m, v, depth+1); err != nil {
					return nil, err
				}
				continue
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := fromYAML(v, depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, val)
		}
		return m, nil

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// mergeInto applies a "<<" merge value. Keys already present win.
func mergeInto(m *Mapping, v *yaml.Node, depth int) error {
	src, err := fromYAML(v, depth)
	if err != nil {
		return err
	}

	var sources []*Mapping
	switch s := src.(type) {
	case *Mapping:
		sources = []*Mapping{s}
	case *Sequence:
		for _, item := range s.Items {
			sm, ok := item.(*Mapping)
			if !ok {
				return fmt.Errorf("line %d: merge sequence must contain mappings", v.Line)
			}
			sources = append(sources, sm)
		}
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", v.Line)
	}

	for _, sm := range sources {
		for k, val := range sm.All() {
			if _, exists := m.Get(k); !exists {
				m.Set(k, val)
			}
		}
	}
	return nil
}

// ToYAML converts a tree into a yaml.Node in block style. Strings are
// double-quoted when a plain scalar cannot carry them; the encoder also
// quotes strings that would read back as another type.
func ToYAML(n Node) *yaml.Node {
	switch x := n.(type) {
	case *Scalar:
		out := &yaml.Node{Kind: yaml.ScalarNode, Tag: presentationTag(x.Tag), Value: x.Value}
		if x.Tag == TagStr && !strings.Contains(x.Value, "\n") && !plainSafe(x.Value) {
			out.Style = yaml.DoubleQuotedStyle
		}
		return out
	case *Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(x.Items))}
		for _, item := range x.Items {
			out.Content = append(out.Content, ToYAML(item))
		}
		return out
	case *Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*x.Len())}
		for k, v := range x.All() {
			out.Content = append(out.Content,
				keyNode(k),
				ToYAML(v),
			)
		}
		return out
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: TagNull, Value: "null"}
	}
}

func keyNode(k string) *yaml.Node {
	out := &yaml.Node{Kind: yaml.ScalarNode, Tag: TagStr, Value: k}
	if !plainSafe(k) {
		out.Style = yaml.DoubleQuotedStyle
	}
	return out
}

// yaml11Bools read back as booleans in YAML 1.1 parsers.
var yaml11Bools = map[string]bool{
	"y": true, "Y": true, "yes": true, "Yes": true, "YES": true,
	"n": true, "N": true, "no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

// plainSafe reports whether s can be written as a plain block scalar that
// every YAML reader takes as the same string. Emptiness and values that
// resolve to another core type are left to the encoder.
func plainSafe(s string) bool {
	if s == "" {
		return true
	}
	if yaml11Bools[s] {
		return false
	}
	if strings.HasPrefix(s, "---") || strings.HasPrefix(s, "...") {
		return false
	}
	if strings.ContainsRune("-?:,[]{}#&*!|>'\"%@`", rune(s[0])) {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' || strings.HasSuffix(s, ":") {
		return false
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return false
	}
	for _, r := range s {
		if r == utf8.RuneError || r == '\uFEFF' || (r != ' ' && !unicode.IsPrint(r)) {
			return false
		}
	}
	return true
}

// numeric returns the value of an int or float scalar.
func numeric(s *Scalar) (float64, bool) {
	if s.Tag != TagInt && s.Tag != TagFloat {
		return 0, false
	}
	var f float64
	if err := (&yaml.Node{Kind: yaml.ScalarNode, Tag: s.Tag, Value: s.Value}).Decode(&f); err != nil {
		return 0, false
	}
	return f, true
}

// presentationTag keeps core schema tags, which the encoder elides or turns
// into quoting, and drops anything else so no explicit tags are emitted.
func presentationTag(tag string) string {
	switch tag {
	case TagNull, TagBool, TagInt, TagFloat, TagStr:
		return tag
	default:
		return ""
	}
}

// EncodeYAML renders the tree as block-style YAML with two-space indentation.
func EncodeYAML(n Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToYAML(n)); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return buf.Bytes(), nil
}
