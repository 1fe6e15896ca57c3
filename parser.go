package dcmstream

import (
	"encoding/binary"
	"io"

	"github.com/b71729/bin"
	"github.com/b71729/dcmstream/dictionary"
)

// Parse is the decode capability the Tokenizer and MarkerReader consume.
// An implementation is bound to one transfer syntax and character set at
// construction time; switching either means constructing a new decoder
// (and, in turn, a new Tokenizer). See spec.md §6 and §9
// ("Decoder as a capability, not an inheritance base").
type Parse interface {
	// DecodeHeader reads one element header from the current position.
	DecodeHeader() (DataElementHeader, error)
	// DecodeItemHeader reads one item/delimiter header.
	DecodeItemHeader() (SequenceItemHeader, error)
	// ReadValue reads header.Len bytes and decodes them according to
	// header.VR and the transfer syntax/character set bound at
	// construction.
	ReadValue(header DataElementHeader) (PrimitiveValue, error)
	// Skip discards n bytes without materializing them, for callers (the
	// lazy MarkerReader) that want to advance past a value they have no
	// interest in decoding.
	Skip(n uint64) error
	// BytesRead returns the cumulative number of bytes consumed from the
	// source since construction.
	BytesRead() uint64
}

// Options configures the construction of a Tokenizer or MarkerReader.
// Mirrors spec.md §6's "Construction inputs" and the teacher's
// SetTransferSyntax/SetImplicitVR/SetLittleEndian surface.
type Options struct {
	TransferSyntax TransferSyntax
	CharacterSet   string // a Specific Character Set defined term, or "" for Default
	Dictionary     dictionary.Dictionary
}

// decoder is the concrete Parse implementation used by this module.
// Grounded on the teacher's ElementReader: tag/VR/length decode
// (readElementVR, readElementLength, tagFromBytes) and value
// materialization (readElementData's padding/charset handling).
type decoder struct {
	br      bin.Reader
	ts      TransferSyntax
	charSet *CharacterSet
	dict    dictionary.Dictionary
}

// newDecoder builds a decoder reading from source under the given options.
func newDecoder(source io.Reader, opts Options) *decoder {
	order := binary.ByteOrder(binary.LittleEndian)
	if !opts.TransferSyntax.LittleEndian {
		order = binary.BigEndian
	}
	dict := opts.Dictionary
	if dict == nil {
		dict = dictionary.Standard
	}
	return &decoder{
		br:      bin.NewReader(source, order),
		ts:      opts.TransferSyntax,
		charSet: LookupCharacterSet(opts.CharacterSet),
		dict:    dict,
	}
}

// BytesRead implements Parse.
func (d *decoder) BytesRead() uint64 {
	return uint64(d.br.GetPosition())
}

// Skip implements Parse by discarding n bytes through the bound reader,
// keeping BytesRead consistent with what was actually consumed.
func (d *decoder) Skip(n uint64) error {
	return d.br.Discard(int(n))
}

// readTag decodes a four-byte (group, element) pair honouring the
// decoder's configured byte order, the same two-uint16-reads-then-pack
// approach as the teacher's tagFromBytes/readTag.
func (d *decoder) readTag() (Tag, error) {
	var group, element uint16
	if err := d.br.ReadUint16(&group); err != nil {
		return Tag{}, err
	}
	if err := d.br.ReadUint16(&element); err != nil {
		return Tag{}, err
	}
	return Tag{Group: group, Element: element}, nil
}

// DecodeHeader implements Parse. It reads a tag, resolves its VR (from the
// dictionary when encoding is implicit, from the stream when explicit),
// reads its length, and returns the assembled header. An EOF encountered
// while reading the tag (i.e. at a clean element boundary) is returned
// unwrapped so the Tokenizer can distinguish graceful end-of-stream from a
// mid-element failure, per spec.md §7.
func (d *decoder) DecodeHeader() (DataElementHeader, error) {
	tag, err := d.readTag()
	if err != nil {
		if err == io.EOF {
			return DataElementHeader{}, io.EOF
		}
		return DataElementHeader{}, decodeErrorf("DecodeHeader", "reading tag: %w", err)
	}

	entry, _ := d.dict.Lookup(tag.Group, tag.Element)
	vr := VR(entry.VR)

	if !d.ts.ImplicitVR {
		var vrBytes [2]byte
		if err := d.br.ReadBytes(vrBytes[:]); err != nil {
			return DataElementHeader{}, decodeErrorf("DecodeHeader", "%s: reading VR: %w", tag, err)
		}
		onWire := VR(string(vrBytes[:]))
		// only trust the dictionary's VR when the stream itself claims UN;
		// an on-wire VR takes precedence, matching readElementVR.
		if onWire != "UN" {
			vr = onWire
		}
	}

	length, err := d.readLength(vr)
	if err != nil {
		return DataElementHeader{}, decodeErrorf("DecodeHeader", "%s: reading length: %w", tag, err)
	}

	Debugf("decoded header %s [%s] len=%v @ %d", tag, vr, length, d.BytesRead())
	return DataElementHeader{Tag: tag, VR: vr, Len: length}, nil
}

// readLength decodes the length field following a tag+VR, honouring
// Implicit/Explicit VR length-field width rules (NEMA PS3.5 Table 7.1-1),
// adapted from readElementLength.
func (d *decoder) readLength(vr VR) (Length, error) {
	if d.ts.ImplicitVR {
		var v uint32
		if err := d.br.ReadUint32(&v); err != nil {
			return 0, err
		}
		return Length(v), nil
	}
	if vr.hasLongLengthField() {
		if err := d.br.Discard(2); err != nil {
			return 0, err
		}
		var v uint32
		if err := d.br.ReadUint32(&v); err != nil {
			return 0, err
		}
		return Length(v), nil
	}
	var v uint16
	if err := d.br.ReadUint16(&v); err != nil {
		return 0, err
	}
	return Length(v), nil
}

// DecodeItemHeader implements Parse. It reads a four-byte tag and
// classifies it as an Item, ItemDelimiter, or SequenceDelimiter, reading a
// trailing 4-byte length only for Item. Adapted from readItem's
// tag-then-length prologue in the teacher.
func (d *decoder) DecodeItemHeader() (SequenceItemHeader, error) {
	tag, err := d.readTag()
	if err != nil {
		return SequenceItemHeader{}, decodeErrorf("DecodeItemHeader", "reading tag: %w", err)
	}

	switch tag {
	case ItemDelimitationTag:
		if err := d.br.Discard(4); err != nil {
			return SequenceItemHeader{}, decodeErrorf("DecodeItemHeader", "discarding item delimiter length: %w", err)
		}
		return SequenceItemHeader{Kind: ItemHeaderItemDelimiter}, nil
	case SequenceDelimitationTag:
		if err := d.br.Discard(4); err != nil {
			return SequenceItemHeader{}, decodeErrorf("DecodeItemHeader", "discarding sequence delimiter length: %w", err)
		}
		return SequenceItemHeader{Kind: ItemHeaderSequenceDelimiter}, nil
	case ItemStartTag:
		var v uint32
		if err := d.br.ReadUint32(&v); err != nil {
			return SequenceItemHeader{}, decodeErrorf("DecodeItemHeader", "reading item length: %w", err)
		}
		return SequenceItemHeader{Kind: ItemHeaderItem, Len: Length(v)}, nil
	default:
		return SequenceItemHeader{}, decodeErrorf("DecodeItemHeader", "%w: found %s", ErrItemStartTagNotFound, tag)
	}
}

// ReadValue implements Parse. It reads header.Len raw bytes, strips a
// single leading/trailing pad byte for the VRs that specify one, and
// re-decodes text VRs through the decoder's configured character set.
// Adapted from readElementData's non-SQ, defined-length branch and the
// FromReader character-set re-encoding pass.
func (d *decoder) ReadValue(header DataElementHeader) (PrimitiveValue, error) {
	n, defined := header.Len.Get()
	if !defined {
		return PrimitiveValue{}, decodeErrorf("ReadValue", "%s: cannot read a value of undefined length directly", header.Tag)
	}
	if n == 0 {
		return PrimitiveValue{VR: header.VR, LittleEndian: d.ts.LittleEndian}, nil
	}

	raw := make([]byte, n)
	if err := d.br.ReadBytes(raw); err != nil {
		return PrimitiveValue{}, decodeErrorf("ReadValue", "%s: %w", header.Tag, err)
	}

	if padStrippedVRs[header.VR] && len(raw) > 1 {
		raw = stripPad(raw)
	}

	if header.VR.isTextVR() {
		decoded, err := d.charSet.Encoding.NewDecoder().Bytes(raw)
		if err == nil {
			raw = decoded
		} else {
			Warnf("%s: character set decode failed, keeping raw bytes: %v", header.Tag, err)
		}
	}

	return PrimitiveValue{VR: header.VR, Raw: raw, LittleEndian: d.ts.LittleEndian}, nil
}

// stripPad removes one trailing or leading 0x00/0x20 pad byte, matching
// readElementData's accounting for vendors padding on either side.
func stripPad(raw []byte) []byte {
	for _, pad := range [2]byte{0x00, 0x20} {
		if raw[len(raw)-1] == pad {
			return raw[:len(raw)-1]
		}
		if raw[0] == pad {
			return raw[1:]
		}
	}
	return raw
}
