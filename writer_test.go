package xmlstream_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucarion/xmlstream"
)

func TestWriterRoundTrip(t *testing.T) {
	doc := `<root a="1"><child>text</child><!--c--></root>`

	r := xmlstream.NewReaderBytes([]byte(doc))
	var out bytes.Buffer
	w := xmlstream.NewWriter(&out)

	for {
		ev, err := r.ReadEvent()
		require.NoError(t, err)
		if _, ok := ev.(xmlstream.EOF); ok {
			break
		}
		require.NoError(t, w.WriteEvent(ev))
	}
	require.NoError(t, w.Flush())

	assert.Equal(t, doc, out.String())
}

func TestWriterIndent(t *testing.T) {
	var out bytes.Buffer
	w := xmlstream.NewIndentWriter(&out, "  ")

	require.NoError(t, w.WriteEvent(xmlstream.StartElement{Content: []byte("root"), NameLen: 4}))
	require.NoError(t, w.WriteEvent(xmlstream.StartElement{Content: []byte("child"), NameLen: 5}))
	require.NoError(t, w.WriteEvent(xmlstream.EndElement{Content: []byte("child")}))
	require.NoError(t, w.WriteEvent(xmlstream.EndElement{Content: []byte("root")}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "<root>\n  <child>\n  </child>\n</root>", out.String())
}

func TestWriterIndentSuppressedByText(t *testing.T) {
	var out bytes.Buffer
	w := xmlstream.NewIndentWriter(&out, "  ")

	require.NoError(t, w.WriteEvent(xmlstream.StartElement{Content: []byte("root"), NameLen: 4}))
	require.NoError(t, w.WriteEvent(xmlstream.CharData{Content: []byte("text")}))
	require.NoError(t, w.WriteEvent(xmlstream.EndElement{Content: []byte("root")}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "<root>text</root>", out.String())
}

func TestWriterEmptyElement(t *testing.T) {
	var out bytes.Buffer
	w := xmlstream.NewWriter(&out)
	require.NoError(t, w.WriteEvent(xmlstream.EmptyElement{Content: []byte(`a x="1"`), NameLen: 1}))
	require.NoError(t, w.Flush())
	assert.Equal(t, `<a x="1"/>`, out.String())
}
