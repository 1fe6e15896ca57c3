// Package dictionary provides opaque tag-name lookup for the dcmstream
// core. It is consulted only for pass-through identification; the
// Tokenizer never branches on its content, only on VR and reserved tags
// (see spec.md §3, "Lifecycle").
//
// Adapted from the teacher's dictionary.DictEntry shape, as used by
// core.LookupTag and dicom.go's lookupTag/NewElementWithTag.
package dictionary

import "fmt"

// Entry describes one known data element tag.
type Entry struct {
	Group     uint16
	Element   uint16
	Name      string
	NameHuman string
	VR        string
	VM        string
	Retired   bool
}

// Dictionary maps a packed (group<<16 | element) tag to its Entry.
type Dictionary map[uint32]Entry

func key(group, element uint16) uint32 {
	return uint32(group)<<16 | uint32(element)
}

// Lookup searches d for the entry matching (group, element). If no entry
// is found, a deterministic placeholder entry is returned with `found`
// false, in the manner of the teacher's lookupTag fallback
// ("Unknown(%04X,%04X)").
func (d Dictionary) Lookup(group, element uint16) (Entry, bool) {
	if e, ok := d[key(group, element)]; ok {
		return e, true
	}
	name := fmt.Sprintf("Unknown(%04X,%04X)", group, element)
	return Entry{Group: group, Element: element, Name: name, NameHuman: name, VR: "UN", VM: "1"}, false
}

// Add registers e in d, keyed by its own tag.
func (d Dictionary) Add(e Entry) {
	d[key(e.Group, e.Element)] = e
}

// Standard is a small seed dictionary covering the tags exercised by this
// module's fixtures and CLI. It is intentionally far from exhaustive: a
// full NEMA data dictionary is outside the scope of this core (spec.md
// §1, "out of scope... dictionary lookup beyond identification of
// reserved tags").
var Standard = func() Dictionary {
	d := make(Dictionary)
	for _, e := range []Entry{
		{Group: 0x0008, Element: 0x0005, Name: "SpecificCharacterSet", NameHuman: "Specific Character Set", VR: "CS", VM: "1-n"},
		{Group: 0x0008, Element: 0x0100, Name: "CodeValue", NameHuman: "Code Value", VR: "SH", VM: "1"},
		{Group: 0x0008, Element: 0x0102, Name: "CodingSchemeDesignator", NameHuman: "Coding Scheme Designator", VR: "SH", VM: "1"},
		{Group: 0x0008, Element: 0x0104, Name: "CodeMeaning", NameHuman: "Code Meaning", VR: "LO", VM: "1"},
		{Group: 0x0008, Element: 0x2218, Name: "AnatomicRegionSequence", NameHuman: "Anatomic Region Sequence", VR: "SQ", VM: "1"},
		{Group: 0x0018, Element: 0x6011, Name: "SequenceOfUltrasoundRegions", NameHuman: "Sequence of Ultrasound Regions", VR: "SQ", VM: "1"},
		{Group: 0x0018, Element: 0x6012, Name: "RegionSpatialFormat", NameHuman: "Region Spatial Format", VR: "US", VM: "1"},
		{Group: 0x0018, Element: 0x6014, Name: "RegionDataType", NameHuman: "Region Data Type", VR: "US", VM: "1"},
		{Group: 0x0020, Element: 0x4000, Name: "ImageComments", NameHuman: "Image Comments", VR: "LT", VM: "1"},
		{Group: 0x0040, Element: 0x0555, Name: "AcquisitionContextSequence", NameHuman: "Acquisition Context Sequence", VR: "SQ", VM: "1"},
		{Group: 0x2050, Element: 0x0020, Name: "PresentationLUTShape", NameHuman: "Presentation LUT Shape", VR: "CS", VM: "1"},
		{Group: 0x7FE0, Element: 0x0010, Name: "PixelData", NameHuman: "Pixel Data", VR: "OW", VM: "1"},
	} {
		d.Add(e)
	}
	return d
}()
