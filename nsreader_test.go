package xmlstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucarion/xmlstream"
)

func TestNSReaderResolvesDefaultNamespace(t *testing.T) {
	r := xmlstream.NewReaderBytes([]byte(`<root xmlns="urn:example"><child/></root>`))
	ns := xmlstream.NewNSReader(r)

	n, _, err := ns.ReadEvent() // root
	require.NoError(t, err)
	assert.Equal(t, "urn:example", n.URI)

	n, _, err = ns.ReadEvent() // child
	require.NoError(t, err)
	assert.Equal(t, "urn:example", n.URI)
}

func TestNSReaderDefaultNamespaceDoesNotApplyToAttributes(t *testing.T) {
	r := xmlstream.NewReaderBytes([]byte(`<root xmlns="urn:example" a="1"/>`))
	ns := xmlstream.NewNSReader(r)

	_, ev, err := ns.ReadEvent()
	require.NoError(t, err)
	empty := ev.(xmlstream.EmptyElement)

	attrs, err := empty.Attributes(xmlstream.AttrOptions{Checks: true}).All()
	require.NoError(t, err)
	require.Len(t, attrs, 2) // xmlns + a

	resolved, err := ns.ResolveAttr(attrs[1].Key)
	require.NoError(t, err)
	assert.Equal(t, "", resolved.URI)
	assert.Equal(t, "a", string(resolved.Local))
}

func TestNSReaderPrefixedNamespace(t *testing.T) {
	r := xmlstream.NewReaderBytes([]byte(`<p:root xmlns:p="urn:example"><p:child/></p:root>`))
	ns := xmlstream.NewNSReader(r)

	n, _, err := ns.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "urn:example", n.URI)
	assert.Equal(t, "root", string(n.Local))

	n, _, err = ns.ReadEvent()
	require.NoError(t, err)
	assert.Equal(t, "urn:example", n.URI)
	assert.Equal(t, "child", string(n.Local))
}

func TestNSReaderUnboundPrefix(t *testing.T) {
	r := xmlstream.NewReaderBytes([]byte(`<q:root/>`))
	ns := xmlstream.NewNSReader(r)

	_, _, err := ns.ReadEvent()
	var unbound *xmlstream.UnboundPrefixError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "q", unbound.Prefix)
}

func TestNSReaderStackDepthTracksNesting(t *testing.T) {
	r := xmlstream.NewReaderBytes([]byte(`<a><b><c/></b></a>`))
	ns := xmlstream.NewNSReader(r)

	for i := 0; i < 5; i++ {
		_, ev, err := ns.ReadEvent()
		require.NoError(t, err)
		if _, ok := ev.(xmlstream.EOF); ok {
			break
		}
	}
}
