package dcmstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerReaderPlainElements(t *testing.T) {
	data := []byte{
		0x08, 0x00, 0x00, 0x01, 'S', 'H', 0x02, 0x00, 'O', 'K',
		0x08, 0x00, 0x02, 0x01, 'S', 'H', 0x02, 0x00, 'O', 'K',
	}
	r := NewMarkerReader(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})

	m, err, ok := r.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0008, 0x0100}, m.Header.Tag)
	assert.Equal(t, uint64(8), m.Pos)

	m, err, ok = r.Next()
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0008, 0x0102}, m.Header.Tag)
	assert.Equal(t, uint64(18), m.Pos)

	_, err, ok = r.Next()
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestMarkerReaderOpenValue(t *testing.T) {
	data := []byte{0x08, 0x00, 0x00, 0x01, 'S', 'H', 0x04, 0x00, 'T', 'E', 'S', 'T'}
	src := bytes.NewReader(data)
	r := NewMarkerReader(src, Options{TransferSyntax: ExplicitVRLittleEndian})

	m, err, ok := r.Next()
	require.True(t, ok)
	require.NoError(t, err)

	vr, err := m.OpenValue(src)
	require.NoError(t, err)
	raw, err := io.ReadAll(vr)
	require.NoError(t, err)
	assert.Equal(t, "TEST", string(raw))
}

func TestMarkerReaderOpenValueUndefinedLength(t *testing.T) {
	m := DicomElementMarker{Header: DataElementHeader{VR: "OB", Len: Length(UndefinedLength)}, Pos: 0}
	_, err := m.OpenValue(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnresolvedValueLength)
}

func TestMarkerReaderSequenceNesting(t *testing.T) {
	data := []byte{
		0x18, 0x00, 0x11, 0x60, 'S', 'Q', 0x00, 0x00, 0x2e, 0x00, 0x00, 0x00,
		0xfe, 0xff, 0x00, 0xe0, 0x14, 0x00, 0x00, 0x00,
		0x18, 0x00, 0x12, 0x60, 'U', 'S', 0x02, 0x00, 0x01, 0x00,
		0x18, 0x00, 0x14, 0x60, 'U', 'S', 0x02, 0x00, 0x02, 0x00,
		0xfe, 0xff, 0x00, 0xe0, 0x0a, 0x00, 0x00, 0x00,
		0x18, 0x00, 0x12, 0x60, 'U', 'S', 0x02, 0x00, 0x04, 0x00,
	}
	r := NewMarkerReader(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})

	m, err, ok := r.Next() // SQ header
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0018, 0x6011}, m.Header.Tag)
	assert.Equal(t, uint32(1), r.Depth())

	m, err, ok = r.Next() // item start
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, ItemStartTag, m.Header.Tag)

	m, err, ok = r.Next() // (0018,6012)
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0018, 0x6012}, m.Header.Tag)

	m, err, ok = r.Next() // (0018,6014)
	require.True(t, ok)
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0018, 0x6014}, m.Header.Tag)

	assert.Equal(t, uint32(1), r.Depth(), "depth only changes on sequence/item header events, not plain elements")
}

func TestMarkerMoveToStart(t *testing.T) {
	m := DicomElementMarker{Pos: 42}
	buf := bytes.NewReader(make([]byte, 100))
	require.NoError(t, m.MoveToStart(buf))
	pos, err := buf.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(42), pos)
}
