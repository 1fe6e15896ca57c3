package dcmstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeaderExplicitShortLength(t *testing.T) {
	data := []byte{0x18, 0x00, 0x12, 0x60, 'U', 'S', 0x02, 0x00}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})

	header, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0018, 0x6012}, header.Tag)
	assert.Equal(t, VR("US"), header.VR)
	assert.Equal(t, Length(2), header.Len)
	assert.Equal(t, uint64(8), d.BytesRead())
}

func TestDecodeHeaderExplicitLongLength(t *testing.T) {
	// OB, two reserved bytes, then a 4-byte length
	data := []byte{0x7f, 0xe0, 0x10, 0x00, 'O', 'B', 0x00, 0x00, 0x04, 0x00, 0x00, 0x00}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})

	header, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, VR("OB"), header.VR)
	assert.Equal(t, Length(4), header.Len)
	assert.Equal(t, uint64(12), d.BytesRead())
}

func TestDecodeHeaderImplicitUsesDictionaryVR(t *testing.T) {
	data := []byte{0x08, 0x00, 0x00, 0x01, 0x02, 0x00, 0x00, 0x00}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ImplicitVRLittleEndian})

	header, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, Tag{0x0008, 0x0100}, header.Tag)
	assert.Equal(t, VR("SH"), header.VR, "implicit VR resolves from the dictionary")
	assert.Equal(t, Length(2), header.Len)
}

func TestDecodeHeaderCleanEOFUnwrapped(t *testing.T) {
	d := newDecoder(bytes.NewReader(nil), Options{TransferSyntax: ExplicitVRLittleEndian})
	_, err := d.DecodeHeader()
	assert.Equal(t, io.EOF, err, "a clean tag-boundary EOF is never wrapped in a DecoderError")
}

func TestDecodeHeaderMidElementEOFWrapped(t *testing.T) {
	data := []byte{0x18, 0x00, 0x12} // truncated mid-tag
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})
	_, err := d.DecodeHeader()
	require.Error(t, err)
	var decErr *DecoderError
	require.ErrorAs(t, err, &decErr)
}

func TestDecodeHeaderExplicitUNDefersToDictionary(t *testing.T) {
	// on-wire VR is UN; the dictionary entry (SH) wins, and since the
	// resolved VR then governs the length-field width, the length here is
	// the plain 2-byte form SH uses rather than UN's long form.
	data := []byte{0x08, 0x00, 0x00, 0x01, 'U', 'N', 0x02, 0x00}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})
	header, err := d.DecodeHeader()
	require.NoError(t, err)
	assert.Equal(t, VR("SH"), header.VR)
	assert.Equal(t, Length(2), header.Len)
}

func TestDecodeItemHeaderVariants(t *testing.T) {
	data := []byte{
		0xfe, 0xff, 0x00, 0xe0, 0x0a, 0x00, 0x00, 0x00,
		0xfe, 0xff, 0x0d, 0xe0, 0x00, 0x00, 0x00, 0x00,
		0xfe, 0xff, 0xdd, 0xe0, 0x00, 0x00, 0x00, 0x00,
	}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})

	ih, err := d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, ItemHeaderItem, ih.Kind)
	assert.Equal(t, Length(10), ih.Len)

	ih, err = d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, ItemHeaderItemDelimiter, ih.Kind)

	ih, err = d.DecodeItemHeader()
	require.NoError(t, err)
	assert.Equal(t, ItemHeaderSequenceDelimiter, ih.Kind)
}

func TestDecodeItemHeaderRejectsUnexpectedTag(t *testing.T) {
	data := []byte{0x08, 0x00, 0x00, 0x01}
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})
	_, err := d.DecodeItemHeader()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrItemStartTagNotFound)
}

func TestReadValueStripsSinglePadByte(t *testing.T) {
	data := []byte("TEST ")
	d := newDecoder(bytes.NewReader(data), Options{TransferSyntax: ExplicitVRLittleEndian})
	v, err := d.ReadValue(DataElementHeader{Tag: Tag{0x0008, 0x0100}, VR: "SH", Len: Length(len(data))})
	require.NoError(t, err)
	assert.Equal(t, "TEST", v.String())
}

func TestReadValueZeroLength(t *testing.T) {
	d := newDecoder(bytes.NewReader(nil), Options{TransferSyntax: ExplicitVRLittleEndian})
	v, err := d.ReadValue(DataElementHeader{VR: "SH", Len: 0})
	require.NoError(t, err)
	assert.Equal(t, PrimitiveValue{VR: "SH", LittleEndian: true}, v)
}

func TestReadValueUndefinedLengthErrors(t *testing.T) {
	d := newDecoder(bytes.NewReader(nil), Options{TransferSyntax: ExplicitVRLittleEndian})
	_, err := d.ReadValue(DataElementHeader{VR: "OB", Len: Length(UndefinedLength)})
	require.Error(t, err)
}
