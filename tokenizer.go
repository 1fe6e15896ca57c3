package dcmstream

import (
	"errors"
	"io"

	"github.com/b71729/dcmstream/dictionary"
)

// DataSetReader is a streaming tokenizer over a DICOM data set: it drives
// a state machine over a Parse capability, producing DataTokens while
// maintaining a stack of open sequence/item scopes. See spec.md §4.1.
//
// A DataSetReader is single-use: once it has produced an error or reached
// end-of-stream, every subsequent call to Next returns ok=false.
type DataSetReader struct {
	parser Parse
	dict   dictionary.Dictionary // opaque pass-through only; never branched on

	inSequence            bool
	delimiterCheckPending bool
	stack                 delimiterStack
	hardBreak             bool
	lastHeader            *DataElementHeader
}

// NewDataSetReader constructs a DataSetReader reading from source, using
// the decoder built in this package for opts.TransferSyntax/CharacterSet.
// Mirrors spec.md §6's "(source, transfer_syntax, character_set)"
// construction form.
func NewDataSetReader(source io.Reader, opts Options) *DataSetReader {
	return NewDataSetReaderWithParser(newDecoder(source, opts), opts.Dictionary)
}

// NewDataSetReaderWithParser constructs a DataSetReader around a
// caller-supplied Parse implementation, mirroring spec.md §6's
// "(source, pre-built parser)" construction form. dict may be nil.
func NewDataSetReaderWithParser(parser Parse, dict dictionary.Dictionary) *DataSetReader {
	if dict == nil {
		dict = dictionary.Standard
	}
	return &DataSetReader{parser: parser, dict: dict}
}

// Next produces the next token in the stream.
//
//   - ok == false means end of stream: no further tokens will ever be
//     produced, whether this is the graceful end of a data set or because
//     a prior call already fused the reader after an error.
//   - ok == true, err != nil means a terminal decode error occurred; the
//     token return value is the zero DataToken.
//   - ok == true, err == nil means tok is the next token in document
//     order.
//
// This is the Go rendering of the Rust source's
// `Option<Result<DataToken, Error>>`.
func (r *DataSetReader) Next() (tok DataToken, err error, ok bool) {
	if r.hardBreak {
		return DataToken{}, nil, false
	}

	if r.delimiterCheckPending {
		closeTok, closed, nowInSequence, cerr := r.stack.updateSeqDelimiters(r.parser.BytesRead())
		if cerr != nil {
			Errorf("sequence delimiter check: %v", cerr)
			r.hardBreak = true
			return DataToken{}, cerr, true
		}
		if closed {
			r.inSequence = nowInSequence
			// delimiterCheckPending stays set: the next call re-enters this
			// branch, cascading closure through simultaneously-ending scopes.
			return closeTok, nil, true
		}
		r.delimiterCheckPending = false
	}

	if r.inSequence {
		return r.nextInSequence()
	}

	if r.lastHeader != nil {
		return r.nextValue()
	}

	return r.nextHeader()
}

// nextInSequence decodes an item header while awaiting the next item or
// the sequence's closing delimiter (spec.md §4.1 branch 3).
func (r *DataSetReader) nextInSequence() (DataToken, error, bool) {
	ih, err := r.parser.DecodeItemHeader()
	if err != nil {
		Errorf("decoding item header: %v", err)
		r.hardBreak = true
		return DataToken{}, err, true
	}

	switch ih.Kind {
	case ItemHeaderItem:
		r.stack.push(seqToken{typ: seqTokenItem, len: ih.Len, baseOffset: r.parser.BytesRead()})
		r.inSequence = false
		if ih.Len == 0 {
			r.delimiterCheckPending = true
		}
		return DataToken{Kind: TokenItemStart, Len: ih.Len}, nil, true

	case ItemHeaderItemDelimiter:
		r.stack.pop()
		r.inSequence = true
		return DataToken{Kind: TokenItemEnd}, nil, true

	default: // ItemHeaderSequenceDelimiter
		r.stack.pop()
		r.inSequence = false
		return DataToken{Kind: TokenSequenceEnd}, nil, true
	}
}

// nextValue reads the value belonging to the previously emitted
// ElementHeader (spec.md §4.1 branch 4).
func (r *DataSetReader) nextValue() (DataToken, error, bool) {
	header := *r.lastHeader
	value, err := r.parser.ReadValue(header)
	if err != nil {
		Errorf("reading value for %s: %v", header.Tag, err)
		r.hardBreak = true
		r.lastHeader = nil
		return DataToken{}, err, true
	}
	r.lastHeader = nil
	// the enclosing item or sequence may now have reached its explicit end
	r.delimiterCheckPending = true
	return DataToken{Kind: TokenPrimitiveValue, Value: value}, nil, true
}

// nextHeader decodes a plain element header, an SQ header, or a
// mis-nested item-delimiter-at-header-position (spec.md §4.1 branch 5).
func (r *DataSetReader) nextHeader() (DataToken, error, bool) {
	header, err := r.parser.DecodeHeader()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// the documented way a data set ends when the stream has no
			// trailing sentinel: spec.md §7.
			r.hardBreak = true
			return DataToken{}, nil, false
		}
		Errorf("decoding header: %v", err)
		r.hardBreak = true
		return DataToken{}, err, true
	}

	if header.VR.IsSequence() {
		r.inSequence = true
		r.stack.push(seqToken{typ: seqTokenSequence, len: header.Len, baseOffset: r.parser.BytesRead()})
		if header.Len == 0 {
			r.delimiterCheckPending = true
		}
		return DataToken{Kind: TokenSequenceStart, Tag: header.Tag, Len: header.Len}, nil, true
	}

	if header.Tag == ItemDelimitationTag {
		// Some encoders terminate an undefined-length item with a delimiter
		// tag appearing at header position rather than via
		// DecodeItemHeader. Recognised here as "re-entering await-next-item"
		// state; the delimiter stack is deliberately left untouched, matching
		// the behaviour of the reference implementation this was distilled
		// from (see DESIGN.md for the open-question resolution).
		Debug("item delimiter encountered at header position")
		r.inSequence = true
		return DataToken{Kind: TokenItemEnd}, nil, true
	}

	r.lastHeader = &header
	return DataToken{Kind: TokenElementHeader, Header: header}, nil, true
}

// Depth returns the current nesting depth, i.e. the delimiter stack's
// height.
func (r *DataSetReader) Depth() int {
	return r.stack.depth()
}
