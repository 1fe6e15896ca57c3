package dcmstream

// seqTokenType discriminates whether a seqToken represents an open
// sequence or an open item, mirroring the Rust source's SeqTokenType.
type seqTokenType int

const (
	seqTokenSequence seqTokenType = iota
	seqTokenItem
)

// seqToken records one open explicit- or undefined-length scope. Pure
// data: it holds no reference to the source, and base_offset is always an
// absolute stream offset so that arithmetic needs no per-frame
// bookkeeping when nested scopes close simultaneously (spec.md §9,
// "Delimiter-stack encoding").
type seqToken struct {
	typ        seqTokenType
	len        Length
	baseOffset uint64
}

// delimiterStack tracks every open sequence/item scope for a Tokenizer.
// Its one non-trivial operation is updateSeqDelimiters (spec.md §4.2).
type delimiterStack struct {
	tokens []seqToken
}

func (s *delimiterStack) push(t seqToken) {
	s.tokens = append(s.tokens, t)
}

func (s *delimiterStack) pop() (seqToken, bool) {
	if len(s.tokens) == 0 {
		return seqToken{}, false
	}
	n := len(s.tokens) - 1
	t := s.tokens[n]
	s.tokens = s.tokens[:n]
	return t, true
}

func (s *delimiterStack) peek() (seqToken, bool) {
	if len(s.tokens) == 0 {
		return seqToken{}, false
	}
	return s.tokens[len(s.tokens)-1], true
}

func (s *delimiterStack) depth() int {
	return len(s.tokens)
}

// updateSeqDelimiters implements spec.md §4.2's algorithm: it compares the
// innermost open scope's computed end-of-scope offset against the
// parser's current byte position, popping and returning a closing token
// when they coincide, erroring when the position has overshot, and
// otherwise reporting that no closure occurred yet (closed false, err nil).
//
// Undefined-length scopes (len.Get() returning ok=false) are never closed
// by this comparison; they close only via an explicit delimiter tag seen
// elsewhere in the Tokenizer, so this function simply reports no closure.
func (s *delimiterStack) updateSeqDelimiters(bytesRead uint64) (token DataToken, closed bool, nowInSequence bool, err error) {
	top, ok := s.peek()
	if !ok {
		return DataToken{}, false, false, nil
	}
	length, defined := top.len.Get()
	if !defined {
		return DataToken{}, false, false, nil
	}

	endOfScope := top.baseOffset + uint64(length)
	switch {
	case endOfScope == bytesRead:
		s.pop()
		switch top.typ {
		case seqTokenSequence:
			return DataToken{Kind: TokenSequenceEnd}, true, false, nil
		default: // seqTokenItem
			return DataToken{Kind: TokenItemEnd}, true, true, nil
		}
	case endOfScope < bytesRead:
		return DataToken{}, false, false, &InconsistentSequenceEndError{Expected: endOfScope, Actual: bytesRead}
	default:
		return DataToken{}, false, false, nil
	}
}
