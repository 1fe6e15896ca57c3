package dcmstream

// VR is a DICOM Value Representation: a two-letter code identifying how an
// element's value is encoded on the wire. See NEMA PS3.5 ``6.2``.
type VR string

// RecognisedVRs lists every VR this module can distinguish for the purpose
// of explicit-VR length decoding and text re-encoding. Unlisted VRs are
// still handled as opaque bytes; only this set gets special treatment.
var RecognisedVRs = []VR{
	"AE", "AS", "AT", "CS", "DA", "DS", "DT", "FL", "FD", "IS", "LO", "LT", "OB", "OD",
	"OF", "OW", "PN", "SH", "SL", "SQ", "SS", "ST", "TM", "UI", "UL", "UN", "US", "UT",
	"OL", "OV", "UC", "UR",
}

// IsSequence reports whether vr is SQ, the one VR the Tokenizer treats
// structurally rather than as a primitive value.
func (vr VR) IsSequence() bool {
	return vr == "SQ"
}

// longLengthVRs are the VRs which, in Explicit VR encoding, are followed by
// two reserved bytes and a 4-byte length instead of a plain 2-byte length.
// See NEMA PS3.5 Table 7.1-1.
var longLengthVRs = map[VR]bool{
	"OB": true, "OW": true, "SQ": true, "UN": true, "UT": true,
	"OD": true, "OF": true, "OL": true, "OV": true, "UC": true, "UR": true,
}

// hasLongLengthField reports whether vr uses a 4-byte length field under
// Explicit VR encoding.
func (vr VR) hasLongLengthField() bool {
	return longLengthVRs[vr]
}

// textVRs are the VRs whose bytes are re-decoded from the data set's
// specific character set rather than treated as plain ASCII/binary.
var textVRs = map[VR]bool{
	"SH": true, "LO": true, "ST": true, "PN": true, "LT": true, "UT": true,
}

// isTextVR reports whether vr's bytes should be passed through the
// configured character set decoder.
func (vr VR) isTextVR() bool {
	return textVRs[vr]
}

// padStrippedVRs are the VRs for which ReadValue trims a single
// trailing or leading pad byte (0x00 or 0x20), per NEMA PS3.5 ``6.2``.
var padStrippedVRs = map[VR]bool{
	"UI": true, "OB": true, "CS": true, "DS": true, "IS": true, "AE": true, "AS": true,
	"DA": true, "DT": true, "LO": true, "LT": true, "OD": true, "OF": true, "OW": true,
	"PN": true, "SH": true, "ST": true, "TM": true, "UT": true,
}
