package xmlstream

import (
	"bytes"
	"sort"

	"github.com/ucarion/xmlstream/internal/canon"
)

// Canonicalize rebuilds a Start or Empty element's Content with its
// attributes re-ordered into Exclusive Canonical XML document order:
// namespace declarations first (the default namespace least), then the
// remaining attributes sorted by resolved namespace URI and local name.
// Values are re-escaped with EscapeAttr. It does not implement the rest of
// the c14n specification (visible-utilization and inherited-namespace
// rendering rules); it is a formatting convenience for producers that want
// deterministic attribute order, not a conformant canonicalizer.
func Canonicalize(ns *NSReader, name QName, attrs []Attribute) []byte {
	cattrs := make([]canon.Attr, len(attrs))
	for i, a := range attrs {
		prefix, local := a.Key.Split()
		uri := ""
		if len(prefix) > 0 && string(prefix) != "xmlns" {
			if resolved, err := ns.ResolveAttr(a.Key); err == nil {
				uri = resolved.URI
			}
		}
		cattrs[i] = canon.Attr{Prefix: string(prefix), Local: string(local), URI: uri, Value: string(a.Value)}
	}
	sort.Sort(canon.SortAttr{Attrs: cattrs})

	var buf bytes.Buffer
	buf.Write(name)
	for _, a := range cattrs {
		buf.WriteByte(' ')
		if a.Prefix != "" {
			buf.WriteString(a.Prefix)
			buf.WriteByte(':')
		}
		buf.WriteString(a.Local)
		buf.WriteString(`="`)
		buf.Write(EscapeAttr([]byte(a.Value)))
		buf.WriteByte('"')
	}
	return buf.Bytes()
}
