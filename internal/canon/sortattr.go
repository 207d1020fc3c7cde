// Package canon orders an element's attributes the way Exclusive Canonical
// XML (c14n) orders them: namespace nodes first (default namespace least),
// then the remaining attributes by resolved namespace URI, breaking ties by
// local name.
//
// https://www.w3.org/TR/2001/REC-xml-c14n-20010315#DocumentOrder
package canon

// Attr is one attribute as seen by the sorter: its raw prefix/local name
// split, and the namespace URI it resolves to (empty for unprefixed,
// non-xmlns attributes).
type Attr struct {
	Prefix string
	Local  string
	URI    string
	Value  string
}

// IsNamespaceNode reports whether a is an xmlns declaration rather than an
// ordinary attribute.
func (a Attr) IsNamespaceNode() bool {
	return a.Prefix == "xmlns" || (a.Prefix == "" && a.Local == "xmlns")
}

// SortAttr implements sort.Interface over a slice of Attr, in c14n
// document order.
type SortAttr struct {
	Attrs []Attr
}

func (s SortAttr) Len() int      { return len(s.Attrs) }
func (s SortAttr) Swap(i, j int) { s.Attrs[i], s.Attrs[j] = s.Attrs[j], s.Attrs[i] }

func (s SortAttr) Less(i, j int) bool {
	a, b := s.Attrs[i], s.Attrs[j]

	// The default namespace node, having no local name, sorts before every
	// other namespace node.
	if a.Prefix == "" && a.Local == "xmlns" {
		return true
	}
	if b.Prefix == "" && b.Local == "xmlns" {
		return false
	}

	if a.IsNamespaceNode() && !b.IsNamespaceNode() {
		return true
	}
	if !a.IsNamespaceNode() && b.IsNamespaceNode() {
		return false
	}
	if a.IsNamespaceNode() && b.IsNamespaceNode() {
		return a.Local < b.Local
	}

	if a.URI != b.URI {
		return a.URI < b.URI
	}
	return a.Local < b.Local
}
