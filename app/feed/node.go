package feed

// The XML decoder yields a generic tree: an element with children is a
// map[string]any, repeated sibling elements collapse into a []any, and a
// pure text element is a plain string. Attribute keys carry attrPrefix and
// the text of a mixed-content element sits under textKey. Real-world feeds
// exercise all three shapes for the same field, so every accessor below is
// total and pattern-matches the union explicitly.
const (
	attrPrefix = "-"
	textKey    = "#text"
)

// Node is one value of the generic parse tree.
type Node = any

// child returns the named child of an element node, or nil when the node
// is not an element or has no such child.
func child(n Node, key string) Node {
	if m, ok := n.(map[string]any); ok {
		return m[key]
	}
	return nil
}

// attr returns the string value of an attribute on an element node, or ""
// when absent or not a string.
func attr(n Node, name string) string {
	if m, ok := n.(map[string]any); ok {
		if v, ok := m[attrPrefix+name].(string); ok {
			return v
		}
	}
	return ""
}

// asList re-wraps a node into a slice. Decoders collapse a singleton child
// list to the bare element, so a single <item> must come back as a list of
// length 1 to keep downstream logic uniform. nil stays nil.
func asList(n Node) []Node {
	switch v := n.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []Node{n}
	}
}
