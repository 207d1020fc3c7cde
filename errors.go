package xmlstream

import "fmt"

// IOError wraps a failure from the underlying byte source or sink.
type IOError struct {
	Offset int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("xmlstream: i/o error at offset %d: %v", e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NonDecodableError reports that bytes could not be transcoded to UTF-8
// under the latched encoding.
type NonDecodableError struct {
	Offset int64
	Err    error
}

func (e *NonDecodableError) Error() string {
	return fmt.Sprintf("xmlstream: non-decodable bytes at offset %d: %v", e.Offset, e.Err)
}

func (e *NonDecodableError) Unwrap() error { return e.Err }

// SyntaxErrorKind enumerates the ways a document can fail to reach the next
// event boundary.
type SyntaxErrorKind int

const (
	UnclosedComment SyntaxErrorKind = iota
	UnclosedPI
	UnclosedCData
	UnclosedDoctype
	UnclosedElement
	UnexpectedBang
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case UnclosedComment:
		return "unclosed comment"
	case UnclosedPI:
		return "unclosed processing instruction"
	case UnclosedCData:
		return "unclosed CDATA section"
	case UnclosedDoctype:
		return "unclosed DOCTYPE"
	case UnclosedElement:
		return "unclosed element"
	case UnexpectedBang:
		return "unexpected '<!'"
	default:
		return "syntax error"
	}
}

// SyntaxError reports a malformed document at a specific byte offset. It is
// fatal to the current parse position; the reader does not auto-recover.
type SyntaxError struct {
	Kind   SyntaxErrorKind
	Offset int64
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xmlstream: %s at offset %d", e.Kind, e.Offset)
}

// EndEventMismatchError reports that an End event's name did not match the
// innermost unclosed Start.
type EndEventMismatchError struct {
	Expected string
	Found    string
	Offset   int64
}

func (e *EndEventMismatchError) Error() string {
	return fmt.Sprintf("xmlstream: end event mismatch at offset %d: expected %q, found %q", e.Offset, e.Expected, e.Found)
}

// AttributeErrorKind enumerates the ways an attribute's syntax can be
// malformed.
type AttributeErrorKind int

const (
	NameWithQuote AttributeErrorKind = iota
	NoEqAfterName
	UnquotedValue
	DuplicateKey
	UnterminatedValue
)

func (k AttributeErrorKind) String() string {
	switch k {
	case NameWithQuote:
		return "quote character in attribute name position"
	case NoEqAfterName:
		return "no '=' after attribute name"
	case UnquotedValue:
		return "unquoted attribute value"
	case DuplicateKey:
		return "duplicate attribute key"
	case UnterminatedValue:
		return "unterminated attribute value"
	default:
		return "malformed attribute"
	}
}

// MalformedAttributeError reports a syntax error found by the attribute
// iterator. Pos is an offset into the element's content bytes, not an
// absolute document offset; Offset is Pos plus the base recorded by
// Attributes.SetOffset, which StartElement.Attributes and
// EmptyElement.Attributes set to the element's own Offset.
type MalformedAttributeError struct {
	Kind   AttributeErrorKind
	Pos    int
	Offset int64
}

func (e *MalformedAttributeError) Error() string {
	return fmt.Sprintf("xmlstream: malformed attribute (%s) at offset %d", e.Kind, e.Offset)
}

// XMLDeclWithoutVersionError reports an XML declaration missing the
// required "version" pseudo-attribute.
type XMLDeclWithoutVersionError struct {
	Offset int64
}

func (e *XMLDeclWithoutVersionError) Error() string {
	return fmt.Sprintf("xmlstream: XML declaration without version at offset %d", e.Offset)
}

// UnboundPrefixError reports that the namespace resolver could not resolve
// a prefix. Suggestion, when non-empty, names the closest currently-bound
// prefix, to help diagnose typos.
type UnboundPrefixError struct {
	Prefix     string
	Suggestion string
	Offset     int64
}

func (e *UnboundPrefixError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("xmlstream: unbound prefix %q at offset %d (did you mean %q?)", e.Prefix, e.Offset, e.Suggestion)
	}
	return fmt.Sprintf("xmlstream: unbound prefix %q at offset %d", e.Prefix, e.Offset)
}

// UnrecognizedEntityError reports a named entity that resolvers only
// recognize the five predefined entities and numeric character references;
// it is returned only when the caller requests entity resolution.
type UnrecognizedEntityError struct {
	Name   string
	Offset int64
}

func (e *UnrecognizedEntityError) Error() string {
	return fmt.Sprintf("xmlstream: unrecognized entity %q at offset %d", e.Name, e.Offset)
}
