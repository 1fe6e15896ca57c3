package dcmstream

import (
	"errors"
	"io"
)

// SpecificCharacterSetTag is (0008,0005). The lazy marker reader emits its
// marker like any other element's and gives it no special handling:
// higher layers may want to special-case it when deciding how to
// interpret subsequent text values.
var SpecificCharacterSetTag = Tag{0x0008, 0x0005}

// DicomElementMarker identifies an element's location within a
// random-access source without materializing its value: a (header,
// stream offset) pair, per spec.md §3.
type DicomElementMarker struct {
	// Header carries the element's tag/VR/length. For markers produced
	// from a SequenceItemHeader, VR is "UN" (not applicable).
	Header DataElementHeader
	// Pos is the source offset immediately after the header's bytes: the
	// start of the value, if any.
	Pos uint64
}

// byteRange returns [Pos, Pos+len) for a marker of defined length, or
// ErrUnresolvedValueLength if the marker's length is undefined.
func (m DicomElementMarker) byteRange() (start, end uint64, err error) {
	n, defined := m.Header.Len.Get()
	if !defined {
		return 0, 0, ErrUnresolvedValueLength
	}
	return m.Pos, m.Pos + uint64(n), nil
}

// OpenValue seeks source to this marker's value and returns a reader
// bounded to exactly its declared length. Returns ErrUnresolvedValueLength
// if the marker's length is undefined (spec.md §7,
// InvalidValueReadError::UnresolvedValueLength).
func (m DicomElementMarker) OpenValue(source io.ReadSeeker) (io.Reader, error) {
	start, end, err := m.byteRange()
	if err != nil {
		return nil, err
	}
	if _, err := source.Seek(int64(start), io.SeekStart); err != nil {
		return nil, err
	}
	return io.LimitReader(source, int64(end-start)), nil
}

// MoveToStart seeks source to the position indicated by this marker.
func (m DicomElementMarker) MoveToStart(source io.Seeker) error {
	_, err := source.Seek(int64(m.Pos), io.SeekStart)
	return err
}

// MarkerReader is a parallel surface to DataSetReader for random-access
// sources: it emits element markers instead of materialized values, and
// keeps no delimiter stack (spec.md §4.3). It shares no state with
// DataSetReader; unifying them was considered and rejected per spec.md
// §9 ("Lazy marker reader duplication").
type MarkerReader struct {
	source     io.ReadSeeker
	parser     Parse
	depth      uint32
	inSequence bool
	hardBreak  bool
}

// NewMarkerReader constructs a MarkerReader reading from source under opts.
func NewMarkerReader(source io.ReadSeeker, opts Options) *MarkerReader {
	return &MarkerReader{source: source, parser: newDecoder(source, opts)}
}

// NewMarkerReaderWithParser constructs a MarkerReader around a
// caller-supplied Parse implementation bound to source.
func NewMarkerReaderWithParser(source io.ReadSeeker, parser Parse) *MarkerReader {
	return &MarkerReader{source: source, parser: parser}
}

// Next produces the next marker. Its (ok, err) contract matches
// DataSetReader.Next: ok=false is end of stream, ok=true with a non-nil
// err is a terminal failure, ok=true with a nil err carries the marker.
func (r *MarkerReader) Next() (marker DicomElementMarker, err error, ok bool) {
	if r.hardBreak {
		return DicomElementMarker{}, nil, false
	}

	if r.inSequence {
		ih, err := r.parser.DecodeItemHeader()
		if err != nil {
			r.hardBreak = true
			return DicomElementMarker{}, err, true
		}
		switch ih.Kind {
		case ItemHeaderItem:
			r.inSequence = false
			return r.markerFromItemHeader(ih), nil, true
		case ItemHeaderItemDelimiter:
			r.inSequence = true
			return r.markerFromItemHeader(ih), nil, true
		default: // ItemHeaderSequenceDelimiter
			r.depth--
			r.inSequence = false
			return r.markerFromItemHeader(ih), nil, true
		}
	}

	header, err := r.parser.DecodeHeader()
	if err != nil {
		r.hardBreak = true
		if errors.Is(err, io.EOF) {
			// the documented way a data set ends when the stream has no
			// trailing sentinel: spec.md §7. Mirrors DataSetReader.nextHeader.
			return DicomElementMarker{}, nil, false
		}
		return DicomElementMarker{}, err, true
	}

	if header.Tag == ItemDelimitationTag {
		// mirrors DataSetReader.nextHeader's handling of the same
		// mis-nested case: re-enter await-next-item state for the
		// enclosing sequence without touching depth.
		r.inSequence = true
		return DicomElementMarker{Header: header, Pos: r.parser.BytesRead()}, nil, true
	}

	if header.VR.IsSequence() {
		r.inSequence = true
		r.depth++
		return DicomElementMarker{Header: header, Pos: r.parser.BytesRead()}, nil, true
	}

	marker := DicomElementMarker{Header: header, Pos: r.parser.BytesRead()}
	// a sequence has no primitive value to skip; everything else does, and
	// since this reader never materializes values, it must advance past
	// them itself so the next call lands on the following header.
	if n, defined := header.Len.Get(); defined && n > 0 {
		if err := r.parser.Skip(uint64(n)); err != nil {
			r.hardBreak = true
			return DicomElementMarker{}, err, true
		}
	}
	return marker, nil, true
}

// markerFromItemHeader converts an item-position header into a marker,
// standing in for the Rust source's `From<SequenceItemHeader> for
// DataElementHeader` used by create_item_marker.
func (r *MarkerReader) markerFromItemHeader(ih SequenceItemHeader) DicomElementMarker {
	var tag Tag
	switch ih.Kind {
	case ItemHeaderItem:
		tag = ItemStartTag
	case ItemHeaderItemDelimiter:
		tag = ItemDelimitationTag
	default:
		tag = SequenceDelimitationTag
	}
	return DicomElementMarker{
		Header: DataElementHeader{Tag: tag, VR: "UN", Len: ih.Len},
		Pos:    r.parser.BytesRead(),
	}
}

// Depth returns the current sequence nesting depth.
func (r *MarkerReader) Depth() uint32 {
	return r.depth
}
