package dcmstream

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// splitCharacterStringVM splits a multi-valued character string on the
// backslash delimiter, per NEMA PS3.5 ``6.4``. Adapted from the teacher's
// splitCharacterStringVM.
func splitCharacterStringVM(buffer []byte) [][]byte {
	return bytes.Split(buffer, []byte(`\`))
}

// splitBinaryVM splits a multi-valued binary value into nBytesEach chunks.
// Adapted from the teacher's splitBinaryVM.
func splitBinaryVM(buffer []byte, nBytesEach int) [][]byte {
	var parts [][]byte
	for pos := 0; len(buffer) >= pos+nBytesEach; pos += nBytesEach {
		parts = append(parts, buffer[pos:pos+nBytesEach])
	}
	return parts
}

func (v PrimitiveValue) byteOrder() binary.ByteOrder {
	if v.LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// String returns the value's raw bytes interpreted as a single text
// string, for VRs that are not multi-valued (or whose multiplicity the
// caller wants collapsed). Grounded on Element.GetValue's *string case.
func (v PrimitiveValue) String() string {
	return string(v.Raw)
}

// Strings splits the value on the backslash VM delimiter and returns each
// component as a string. Grounded on Element.GetValue's *[]string case.
func (v PrimitiveValue) Strings() []string {
	parts := splitCharacterStringVM(v.Raw)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, string(p))
	}
	return out
}

// UInt16s decodes the value as a sequence of 16-bit unsigned integers
// (VR US/AT component), per Element.GetValue's binary cases.
func (v PrimitiveValue) UInt16s() ([]uint16, error) {
	if len(v.Raw)%2 != 0 {
		return nil, fmt.Errorf("dcmstream: value of %d bytes is not a whole number of uint16s", len(v.Raw))
	}
	order := v.byteOrder()
	out := make([]uint16, 0, len(v.Raw)/2)
	for _, chunk := range splitBinaryVM(v.Raw, 2) {
		out = append(out, order.Uint16(chunk))
	}
	return out, nil
}

// UInt32s decodes the value as a sequence of 32-bit unsigned integers
// (VR UL).
func (v PrimitiveValue) UInt32s() ([]uint32, error) {
	if len(v.Raw)%4 != 0 {
		return nil, fmt.Errorf("dcmstream: value of %d bytes is not a whole number of uint32s", len(v.Raw))
	}
	order := v.byteOrder()
	out := make([]uint32, 0, len(v.Raw)/4)
	for _, chunk := range splitBinaryVM(v.Raw, 4) {
		out = append(out, order.Uint32(chunk))
	}
	return out, nil
}
