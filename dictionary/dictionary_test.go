package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupKnownEntry(t *testing.T) {
	e, found := Standard.Lookup(0x0008, 0x0005)
	require.True(t, found)
	assert.Equal(t, "SpecificCharacterSet", e.Name)
	assert.Equal(t, "CS", e.VR)
}

func TestLookupUnknownEntryFallsBack(t *testing.T) {
	e, found := Standard.Lookup(0x1111, 0x2222)
	assert.False(t, found)
	assert.Equal(t, "Unknown(1111,2222)", e.Name)
	assert.Equal(t, "UN", e.VR)
}

func TestAddOverridesLookup(t *testing.T) {
	d := make(Dictionary)
	d.Add(Entry{Group: 0x0009, Element: 0x0001, Name: "PrivateThing", VR: "LO"})
	e, found := d.Lookup(0x0009, 0x0001)
	require.True(t, found)
	assert.Equal(t, "PrivateThing", e.Name)
}
