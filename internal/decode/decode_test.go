package decode_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucarion/xmlstream/internal/decode"
)

func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}

func TestTranscoderPlainUTF8(t *testing.T) {
	tr := decode.NewTranscoder(bytes.NewReader([]byte("<root/>")))
	out := readAll(t, tr)
	assert.Equal(t, "<root/>", string(out))
	assert.Equal(t, decode.UTF8, tr.Encoding())
}

func TestTranscoderUTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<root/>")...)
	tr := decode.NewTranscoder(bytes.NewReader(in))
	out := readAll(t, tr)
	assert.Equal(t, "<root/>", string(out))
	assert.Equal(t, decode.UTF8, tr.Encoding())
}

func TestTranscoderUTF16LEBOM(t *testing.T) {
	// "<r/>" in UTF-16LE, preceded by the FF FE BOM.
	in := []byte{0xFF, 0xFE, '<', 0, 'r', 0, '/', 0, '>', 0}
	tr := decode.NewTranscoder(bytes.NewReader(in))
	out := readAll(t, tr)
	assert.Equal(t, "<r/>", string(out))
	assert.Equal(t, decode.UTF16LE, tr.Encoding())
}

func TestTranscoderUTF16BEBOM(t *testing.T) {
	in := []byte{0xFE, 0xFF, 0, '<', 0, 'r', 0, '/', 0, '>'}
	tr := decode.NewTranscoder(bytes.NewReader(in))
	out := readAll(t, tr)
	assert.Equal(t, "<r/>", string(out))
	assert.Equal(t, decode.UTF16BE, tr.Encoding())
}

func TestReconcileMismatchAfterBOM(t *testing.T) {
	in := []byte{0xFE, 0xFF, 0, '<', 0, 'r', 0, '/', 0, '>'}
	tr := decode.NewTranscoder(bytes.NewReader(in))

	_, err := tr.Read(make([]byte, 1))
	require.NoError(t, err)

	err = tr.Reconcile("UTF-8")
	var mismatch *decode.MismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestReconcileCompatibleAfterBOM(t *testing.T) {
	in := []byte{0xFE, 0xFF, 0, '<', 0, 'r', 0, '/', 0, '>'}
	tr := decode.NewTranscoder(bytes.NewReader(in))

	_, err := tr.Read(make([]byte, 1))
	require.NoError(t, err)

	assert.NoError(t, tr.Reconcile("UTF-16BE"))
}

func TestReconcileDeclaredEncodingNoBOM(t *testing.T) {
	// ISO-8859-1 0xE9 is "é"; UTF-8 for "é" is 0xC3 0xA9.
	in := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r>")
	in = append(in, 0xE9)
	in = append(in, []byte("</r>")...)

	tr := decode.NewTranscoder(bytes.NewReader(in))

	declEnd := len("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>")
	head := make([]byte, declEnd)
	_, err := io.ReadFull(tr, head)
	require.NoError(t, err)
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>", string(head))

	require.NoError(t, tr.Reconcile("ISO-8859-1"))

	rest := readAll(t, tr)
	assert.Equal(t, "<r>é</r>", string(rest))
}
