package xmlstream

import (
	"bytes"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ucarion/xmlstream/internal/nsstack"
)

// Namespace is the resolved namespace of a name. URI is empty when the
// name carries no namespace (no applicable xmlns binding).
type Namespace struct {
	URI   string
	Local []byte
}

// NSReader wraps a Reader, resolving element and attribute names against
// the xmlns bindings in scope at each point in the document. A binding
// frame is pushed for every Start/Empty element, even one that declares no
// xmlns attributes, and popped at the matching End, so the frame stack
// depth always equals the element nesting depth.
//
// Per the XML Namespaces recommendation, a default ("xmlns=...") binding
// applies to unprefixed element names but never to unprefixed attribute
// names; use Resolve for elements and ResolveAttr for attributes.
type NSReader struct {
	r     *Reader
	stack nsstack.Stack

	// pendingPop defers popping an Empty element's binding frame until the
	// next ReadEvent call, so that attribute resolution performed by the
	// caller after ReadEvent returns (attribute iteration is always lazy)
	// still sees the element's own bindings in scope.
	pendingPop bool
}

// NewNSReader returns an NSReader reading events from r.
func NewNSReader(r *Reader) *NSReader {
	return &NSReader{r: r}
}

// ReadEvent returns the next event along with the resolved namespace of
// its name (zero Namespace for events, such as Comment or Text, that carry
// no name).
func (nr *NSReader) ReadEvent() (Namespace, Event, error) {
	if nr.pendingPop {
		nr.stack.Pop()
		nr.pendingPop = false
	}

	ev, err := nr.r.ReadEvent()
	if err != nil {
		return Namespace{}, nil, err
	}

	switch v := ev.(type) {
	case StartElement:
		nr.pushBindings(v.Attributes(AttrOptions{Checks: true}))
		ns, rerr := nr.Resolve(v.Name())
		if rerr != nil {
			return Namespace{}, nil, rerr
		}
		return ns, ev, nil

	case EmptyElement:
		nr.pushBindings(v.Attributes(AttrOptions{Checks: true}))
		ns, rerr := nr.Resolve(v.Name())
		nr.pendingPop = true
		if rerr != nil {
			return Namespace{}, nil, rerr
		}
		return ns, ev, nil

	case EndElement:
		ns, rerr := nr.Resolve(QName(v.Content))
		nr.stack.Pop()
		if rerr != nil {
			return Namespace{}, nil, rerr
		}
		return ns, ev, nil

	default:
		return Namespace{}, ev, nil
	}
}

func (nr *NSReader) pushBindings(attrs *Attributes) {
	var bindings map[string]string
	for {
		a, err := attrs.Next()
		if err != nil {
			break
		}
		if prefix, ok := a.Key.IsXmlns(); ok {
			if bindings == nil {
				bindings = make(map[string]string)
			}
			bindings[prefix] = string(a.Value)
		}
	}
	nr.stack.Push(bindings)
}

// Resolve resolves name as an element name: an unprefixed name picks up
// the innermost default namespace, if any.
func (nr *NSReader) Resolve(name QName) (Namespace, error) {
	prefix, local := name.Split()
	if len(prefix) == 0 {
		uri, _ := nr.stack.Get("")
		return Namespace{URI: uri, Local: local}, nil
	}
	return nr.resolvePrefixed(string(prefix), local)
}

// ResolveAttr resolves name as an attribute name: an unprefixed name never
// picks up the default namespace (XML Namespaces §5.2).
func (nr *NSReader) ResolveAttr(name QName) (Namespace, error) {
	prefix, local := name.Split()
	if len(prefix) == 0 {
		return Namespace{Local: local}, nil
	}
	return nr.resolvePrefixed(string(prefix), local)
}

func (nr *NSReader) resolvePrefixed(prefix string, local []byte) (Namespace, error) {
	uri, ok := nr.stack.Get(prefix)
	if !ok {
		return Namespace{}, &UnboundPrefixError{Prefix: prefix, Suggestion: nr.suggest(prefix), Offset: nr.r.Offset()}
	}
	return Namespace{URI: uri, Local: local}, nil
}

func (nr *NSReader) suggest(prefix string) string {
	ranks := fuzzy.RankFind(prefix, nr.stack.Prefixes())
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.Target
}

// ReadToEnd forwards to the underlying Reader, keeping the namespace stack
// in sync by popping one frame per End event consumed while skipping the
// subtree.
func (nr *NSReader) ReadToEnd(name []byte) error {
	// name usually aliases the buffer that the ReadEvent calls below reuse.
	name = append([]byte(nil), name...)
	depth := 1
	for {
		_, ev, err := nr.ReadEvent()
		if err != nil {
			return err
		}
		switch v := ev.(type) {
		case StartElement:
			if bytes.Equal(v.Name(), name) {
				depth++
			}
		case EndElement:
			if bytes.Equal(v.Content, name) {
				depth--
				if depth == 0 {
					return nil
				}
			}
		case EOF:
			return &SyntaxError{Kind: UnclosedElement}
		}
	}
}
