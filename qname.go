package xmlstream

import "bytes"

// QName is an element or attribute name of the form "local" or
// "prefix:local".
type QName []byte

// Split decomposes the name into its prefix and local parts. prefix is nil
// (not the empty, non-nil slice) when the name carries no prefix.
func (q QName) Split() (prefix, local []byte) {
	if i := bytes.IndexByte(q, ':'); i >= 0 {
		return q[:i], q[i+1:]
	}
	return nil, q
}

// Prefix returns the name's prefix, or nil if unprefixed.
func (q QName) Prefix() []byte {
	prefix, _ := q.Split()
	return prefix
}

// LocalName returns the name's local part.
func (q QName) LocalName() []byte {
	_, local := q.Split()
	return local
}

// IsXmlns reports whether the name is exactly "xmlns" or has the prefix
// "xmlns" (an "xmlns:prefix" namespace declaration). It returns the
// declared prefix (empty for the default namespace) and true if so.
func (q QName) IsXmlns() (declaredPrefix string, ok bool) {
	if bytes.Equal(q, []byte("xmlns")) {
		return "", true
	}
	prefix, local := q.Split()
	if bytes.Equal(prefix, []byte("xmlns")) {
		return string(local), true
	}
	return "", false
}

// String returns the name as a Go string.
func (q QName) String() string {
	return string(q)
}
