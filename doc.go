/*
===============================================================================
	dcmstream
	---
	Provides a streaming tokenizer over a DICOM data set: given a byte
	source already positioned past the File Meta Information, together
	with a transfer syntax and character set, DataSetReader produces the
	DataToken sequence forming a well-nested tree of the data set
	(ElementHeader, SequenceStart, SequenceEnd, ItemStart, ItemEnd,
	PrimitiveValue). MarkerReader is the sibling surface for random-access
	sources, trading materialized values for (header, offset) markers.
===============================================================================
*/
package dcmstream
