package dcmstream

// TransferSyntax describes the wire encoding in effect for a data set:
// whether VRs are implicit, and which byte order integers use. Grounded
// on the teacher's ElementReader.SetImplicitVR/SetLittleEndian pair and
// the leo-cydar fork's checkTransferSyntaxSupport allow-list.
type TransferSyntax struct {
	UID          string
	Name         string
	ImplicitVR   bool
	LittleEndian bool
}

// Well-known transfer syntaxes this module can decode.
var (
	ImplicitVRLittleEndian = TransferSyntax{
		UID: "1.2.840.10008.1.2", Name: "Implicit VR Little Endian",
		ImplicitVR: true, LittleEndian: true,
	}
	ExplicitVRLittleEndian = TransferSyntax{
		UID: "1.2.840.10008.1.2.1", Name: "Explicit VR Little Endian",
		ImplicitVR: false, LittleEndian: true,
	}
	ExplicitVRBigEndian = TransferSyntax{
		UID: "1.2.840.10008.1.2.2", Name: "Explicit VR Big Endian",
		ImplicitVR: false, LittleEndian: false,
	}
)

// transferSyntaxesByUID supports looking a TransferSyntax up by its UID,
// as read out of a File Meta Information TransferSyntaxUID element by the
// (external) outer reader spec.md §1 assumes has already run.
var transferSyntaxesByUID = map[string]TransferSyntax{
	ImplicitVRLittleEndian.UID: ImplicitVRLittleEndian,
	ExplicitVRLittleEndian.UID: ExplicitVRLittleEndian,
	ExplicitVRBigEndian.UID:    ExplicitVRBigEndian,
}

// LookupTransferSyntax resolves a UID to a known TransferSyntax. If the UID
// is unrecognised, Explicit VR Little Endian is returned together with
// `false`, mirroring the permissive defaulting the teacher applies
// elsewhere (e.g. NewElementReader defaulting to Implicit VR Little
// Endian before any encoding has been determined).
func LookupTransferSyntax(uid string) (TransferSyntax, bool) {
	if ts, ok := transferSyntaxesByUID[uid]; ok {
		return ts, true
	}
	return ExplicitVRLittleEndian, false
}
