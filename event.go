package xmlstream

// Event is the sealed union of tokens produced by Reader.ReadEvent. The
// concrete types below are its only implementations; callers switch on
// concrete type, not on a Kind() discriminant, to get exhaustiveness
// checking from go vet.
type Event interface {
	isEvent()
}

// StartElement is an opening tag "<name attrs...>". Content holds the bytes
// between '<' and '>', not including either; NameLen is the length of the
// name at the front of Content, so Content[NameLen:] is the attribute
// bytes. Both are borrowed from the Reader's internal buffer and are only
// valid until the next ReadEvent call; call Clone to retain them.
type StartElement struct {
	Content []byte
	NameLen int
	// Offset is the absolute document offset of Content[0].
	Offset int64
}

func (StartElement) isEvent() {}

// Name returns the element's qualified name.
func (e StartElement) Name() QName { return QName(e.Content[:e.NameLen]) }

// Attributes returns an iterator over the element's attributes.
func (e StartElement) Attributes(opts AttrOptions) *Attributes {
	return NewAttributes(e.Content, e.NameLen, opts).SetOffset(e.Offset)
}

// EmptyElement is a self-closing tag "<name attrs.../>". It has the same
// shape as StartElement; Reader only distinguishes the two at the point of
// tokenizing, since an empty element never pushes onto the open-element
// stack (unless Config.ExpandEmptyElements synthesizes a matching End).
type EmptyElement struct {
	Content []byte
	NameLen int
	// Offset is the absolute document offset of Content[0].
	Offset int64
}

func (EmptyElement) isEvent() {}

func (e EmptyElement) Name() QName { return QName(e.Content[:e.NameLen]) }

func (e EmptyElement) Attributes(opts AttrOptions) *Attributes {
	return NewAttributes(e.Content, e.NameLen, opts).SetOffset(e.Offset)
}

// EndElement is a closing tag "</name>". Content holds the name bytes
// only, with any trailing whitespace already trimmed if
// Config.TrimMarkupNamesInClosingTags is set.
type EndElement struct {
	Content []byte
}

func (EndElement) isEvent() {}

func (e EndElement) Name() QName { return QName(e.Content) }

// CharData is a run of text content between markup. If
// Config.SplitGeneralRefs is set, a CharData event never spans a "&...;"
// reference; GeneralRef events are emitted between the surrounding runs
// instead.
type CharData struct {
	Content []byte
}

func (CharData) isEvent() {}

// Unescape decodes entity and character references in the text.
func (e CharData) Unescape() ([]byte, error) {
	return Unescape(e.Content)
}

// GeneralRef is a single "&name;" or "&#N;"/"&#xN;" reference, emitted in
// place when Config.SplitGeneralRefs is set.
type GeneralRef struct {
	// NameBytes is the reference's body: "amp" for "&amp;", "#38" for
	// "&#38;", "#x26" for "&#x26;".
	NameBytes []byte
}

func (GeneralRef) isEvent() {}

// Resolve decodes the reference to its replacement text. It returns
// UnrecognizedEntityError for any name outside the five predefined
// entities and numeric character references; there is no DTD to consult.
func (e GeneralRef) Resolve() ([]byte, error) {
	return resolveRef(e.NameBytes)
}

// CData is a "<![CDATA[...]]>" section. Content holds the bytes between
// the opening "[CDATA[" and the closing "]]>", verbatim and never escaped.
type CData struct {
	Content []byte
}

func (CData) isEvent() {}

// Comment is a "<!--...-->" section. Content holds the bytes between the
// delimiters.
type Comment struct {
	Content []byte
}

func (Comment) isEvent() {}

// PI is a processing instruction "<?target data?>", other than the XML
// declaration itself (see Decl). Content holds the bytes between "<?" and
// "?>".
type PI struct {
	Content []byte
}

func (PI) isEvent() {}

// Decl is the XML declaration "<?xml ...?>". Content holds the
// pseudo-attribute bytes following "xml" and preceding "?>".
type Decl struct {
	Content []byte
}

func (Decl) isEvent() {}

func (e Decl) attrs() *Attributes {
	return NewAttributes(e.Content, 0, AttrOptions{Checks: true})
}

// Version returns the declaration's required "version" pseudo-attribute,
// or XMLDeclWithoutVersionError if absent.
func (e Decl) Version() (string, error) {
	it := e.attrs()
	for {
		a, err := it.Next()
		if err == ErrNoMoreAttributes {
			return "", &XMLDeclWithoutVersionError{}
		}
		if err != nil {
			return "", err
		}
		if string(a.Key) == "version" {
			return string(a.Value), nil
		}
	}
}

// Encoding returns the declaration's "encoding" pseudo-attribute, and
// whether it was present.
func (e Decl) Encoding() (string, bool) {
	it := e.attrs()
	for {
		a, err := it.Next()
		if err != nil {
			return "", false
		}
		if string(a.Key) == "encoding" {
			return string(a.Value), true
		}
	}
}

// Standalone returns the declaration's "standalone" pseudo-attribute
// interpreted as a bool, and whether it was present.
func (e Decl) Standalone() (yes bool, present bool) {
	it := e.attrs()
	for {
		a, err := it.Next()
		if err != nil {
			return false, false
		}
		if string(a.Key) == "standalone" {
			return string(a.Value) == "yes", true
		}
	}
}

// DocType is a "<!DOCTYPE ...>" declaration, including any bracketed
// internal subset. Content holds the bytes between "<!DOCTYPE" and the
// closing '>'.
type DocType struct {
	Content []byte
}

func (DocType) isEvent() {}

// EOF marks the end of the document. Reader.ReadEvent returns it at the
// clean end of input, and returns it again on every subsequent call
// (property P2: idempotent at EOF) rather than an error.
type EOF struct{}

func (EOF) isEvent() {}

// Clone returns a copy of e whose byte slices are independently owned and
// remain valid across subsequent ReadEvent calls.
func Clone(e Event) Event {
	cp := func(b []byte) []byte {
		if b == nil {
			return nil
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out
	}
	switch v := e.(type) {
	case StartElement:
		return StartElement{Content: cp(v.Content), NameLen: v.NameLen, Offset: v.Offset}
	case EmptyElement:
		return EmptyElement{Content: cp(v.Content), NameLen: v.NameLen, Offset: v.Offset}
	case EndElement:
		return EndElement{Content: cp(v.Content)}
	case CharData:
		return CharData{Content: cp(v.Content)}
	case GeneralRef:
		return GeneralRef{NameBytes: cp(v.NameBytes)}
	case CData:
		return CData{Content: cp(v.Content)}
	case Comment:
		return Comment{Content: cp(v.Content)}
	case PI:
		return PI{Content: cp(v.Content)}
	case Decl:
		return Decl{Content: cp(v.Content)}
	case DocType:
		return DocType{Content: cp(v.Content)}
	case EOF:
		return EOF{}
	default:
		return e
	}
}
