package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ucarion/xmlstream/internal/scanner"
)

func TestQuotedParserFeed(t *testing.T) {
	var p scanner.QuotedParser
	n, ok := p.Feed([]byte("<my-element"))
	assert.False(t, ok)

	n, ok = p.Feed([]byte(" with = 'some >"))
	assert.False(t, ok)

	n, ok = p.Feed([]byte(" inside'>and the text follow..."))
	assert.True(t, ok)
	assert.Equal(t, 9, n)
}

func TestQuotedParserIgnoresQuotedGT(t *testing.T) {
	var p scanner.QuotedParser
	n, ok := p.Feed([]byte(`b='>' c='2'/>`))
	assert.True(t, ok)
	assert.Equal(t, len(`b='>' c='2'/>`), n)
}

func TestQuotedParserFeedOneOf(t *testing.T) {
	var p scanner.QuotedParser
	n, kind := p.FeedOneOf([]byte(`a CDATA "x>y">tail`))
	assert.Equal(t, scanner.OneOfClose, kind)
	assert.Equal(t, len(`a CDATA "x>y">tail`)-len(`tail`)-1, n)
}

func TestQuotedParserFeedOneOfOpen(t *testing.T) {
	var p scanner.QuotedParser
	n, kind := p.FeedOneOf([]byte(`<!ENTITY foo "bar">`))
	assert.Equal(t, scanner.OneOfOpen, kind)
	assert.Equal(t, 0, n)
}
