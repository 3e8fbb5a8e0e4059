package document

// MappingRewrite inspects a mapping and optionally returns its replacement.
type MappingRewrite func(m *Mapping) (Node, bool)

// Rewrite returns a new tree equal to n except that every mapping for which
// fn reports a replacement is substituted by that replacement. The walk is
// top-down and does not descend into replacements. n is never modified.
func Rewrite(n Node, fn MappingRewrite) Node {
	switch x := n.(type) {
	case *Mapping:
		if repl, ok := fn(x); ok {
			return repl
		}
		out := NewMapping()
		for k, v := range x.All() {
			out.Set(k, Rewrite(v, fn))
		}
		return out
	case *Sequence:
		out := &Sequence{Items: make([]Node, len(x.Items))}
		for i, item := range x.Items {
			out.Items[i] = Rewrite(item, fn)
		}
		return out
	case *Scalar:
		return x.Clone()
	default:
		return n
	}
}
