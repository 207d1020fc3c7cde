package xmlstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucarion/xmlstream"
)

func TestUnescapePredefinedEntities(t *testing.T) {
	out, err := xmlstream.Unescape([]byte("a &amp; b &lt;c&gt; &apos;d&apos; &quot;e&quot;"))
	require.NoError(t, err)
	assert.Equal(t, `a & b <c> 'd' "e"`, string(out))
}

func TestUnescapeNumericCharRef(t *testing.T) {
	out, err := xmlstream.Unescape([]byte("&#65;&#x42;"))
	require.NoError(t, err)
	assert.Equal(t, "AB", string(out))
}

func TestUnescapeNoAmpersandIsPassthrough(t *testing.T) {
	out, err := xmlstream.Unescape([]byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "plain text", string(out))
}

func TestUnescapeUnrecognizedEntity(t *testing.T) {
	_, err := xmlstream.Unescape([]byte("&bogus;"))
	var unrec *xmlstream.UnrecognizedEntityError
	require.ErrorAs(t, err, &unrec)
	assert.Equal(t, "bogus", unrec.Name)
}

func TestEscapeTextAndAttr(t *testing.T) {
	assert.Equal(t, "a &amp; &lt;b&gt;", string(xmlstream.EscapeText([]byte("a & <b>"))))
	assert.Equal(t, `a &amp; &quot;b&quot;`, string(xmlstream.EscapeAttr([]byte(`a & "b"`))))
}
