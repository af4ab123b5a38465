package keycatalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownKeys(t *testing.T) {
	c := New()

	cases := []struct {
		name string
		code uint16
	}{
		{"a", 0x1E},
		{"enter", 0x1C},
		{"return", 0x1C},
		{"f12", 0x58},
		{"insert", 0xD2 + extended},
		{"ctrlright", 0x9D + extended},
	}
	for _, tc := range cases {
		code, ok := c.Lookup(tc.name)
		assert.True(t, ok, "expected %q to be known", tc.name)
		assert.Equal(t, tc.code, code, "key %q", tc.name)
	}
}

func TestLookupUnknownKey(t *testing.T) {
	c := New()
	_, ok := c.Lookup("not-a-real-key")
	assert.False(t, ok)
}

func TestHasMatchesLookup(t *testing.T) {
	c := New()
	assert.True(t, c.Has("space"))
	assert.False(t, c.Has("space-bar"))
}

func TestNamesCoversCatalog(t *testing.T) {
	c := New()
	assert.Len(t, c.Names(), len(defaultKeys))
}

func TestNewDoesNotPanicOnDefaultTable(t *testing.T) {
	assert.NotPanics(t, func() { New() })
}
