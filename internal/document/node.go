// Package document models an OpenAPI document as an untyped, order-preserving
// tree of scalars, sequences and mappings.
//
// The tree is deliberately schema-agnostic: the bundler only interprets the
// paths and components.schemas subtrees and copies everything else verbatim,
// so a typed OpenAPI model would discard information it does not know about.
package document

import (
	"iter"

	"github.com/pb33f/libopenapi/orderedmap"
)

// Kind identifies the variant of a Node.
type Kind int

const (
	ScalarKind Kind = iota + 1
	SequenceKind
	MappingKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Node is one of *Scalar, *Sequence or *Mapping.
type Node interface {
	Kind() Kind
	// Clone returns a deep copy that shares no structure with the receiver.
	Clone() Node
}

// YAML core schema tags carried by scalars.
const (
	TagNull  = "!!null"
	TagBool  = "!!bool"
	TagInt   = "!!int"
	TagFloat = "!!float"
	TagStr   = "!!str"
)

// Scalar is a leaf value. Value holds the textual form and Tag the resolved
// YAML tag, so numbers and booleans survive a round trip unchanged.
type Scalar struct {
	Tag   string
	Value string
}

func (s *Scalar) Kind() Kind { return ScalarKind }

func (s *Scalar) Clone() Node {
	c := *s
	return &c
}

// Str returns a string scalar.
func Str(v string) *Scalar { return &Scalar{Tag: TagStr, Value: v} }

// Null returns a null scalar.
func Null() *Scalar { return &Scalar{Tag: TagNull, Value: "null"} }

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items []Node
}

// Seq builds a sequence from items.
func Seq(items ...Node) *Sequence { return &Sequence{Items: items} }

func (s *Sequence) Kind() Kind { return SequenceKind }

func (s *Sequence) Clone() Node {
	c := &Sequence{Items: make([]Node, len(s.Items))}
	for i, item := range s.Items {
		c.Items[i] = item.Clone()
	}
	return c
}

// Mapping is a string-keyed map that remembers insertion order. Setting an
// existing key replaces its value in place without moving it.
type Mapping struct {
	entries *orderedmap.Map[string, Node]
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: orderedmap.New[string, Node]()}
}

// Pair is a key/value entry used to build mappings literally.
type Pair struct {
	Key   string
	Value Node
}

// Map builds a mapping from pairs in order.
func Map(pairs ...Pair) *Mapping {
	m := NewMapping()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

func (m *Mapping) Kind() Kind { return MappingKind }

func (m *Mapping) Clone() Node {
	c := NewMapping()
	for k, v := range m.All() {
		c.Set(k, v.Clone())
	}
	return c
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return m.entries.Len()
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	return m.entries.Get(key)
}

// Set stores value under key.
func (m *Mapping) Set(key string, value Node) {
	m.entries.Set(key, value)
}

// All iterates entries in insertion order.
func (m *Mapping) All() iter.Seq2[string, Node] {
	return m.entries.FromOldest()
}

// Keys returns the keys in insertion order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Mapping returns the child under key when it is itself a mapping.
func (m *Mapping) Mapping(key string) (*Mapping, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	child, ok := v.(*Mapping)
	return child, ok
}

// String returns the string value under key, if it is a scalar.
func (m *Mapping) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(*Scalar)
	if !ok || s.Tag == TagNull {
		return "", false
	}
	return s.Value, true
}

// Equal reports whether a and b are structurally identical: same variants,
// same keys in the same order, same scalar tags and values. Numbers compare
// by value, so 1.0 equals 1 and 1e3 equals 1000.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Scalar:
		y, ok := b.(*Scalar)
		if !ok {
			return false
		}
		if xn, ok := numeric(x); ok {
			if yn, ok := numeric(y); ok {
				return xn == yn
			}
		}
		if x.Tag != y.Tag {
			return false
		}
		return x.Tag == TagNull || x.Value == y.Value
	case *Sequence:
		y, ok := b.(*Sequence)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		y, ok := b.(*Mapping)
		if !ok || x.Len() != y.Len() {
			return false
		}
		xk, yk := x.Keys(), y.Keys()
		for i, k := range xk {
			if yk[i] != k {
				return false
			}
			xv, _ := x.Get(k)
			yv, _ := y.Get(k)
			if !Equal(xv, yv) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}
