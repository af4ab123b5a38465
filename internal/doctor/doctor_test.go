package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
)

func TestValidateCatchesUnknownKey(t *testing.T) {
	tbl := instr.NewTable()
	p := instr.New("p1", instr.Press, 1)
	p.KeyRef = "not-a-key"
	require.NoError(t, tbl.Insert(p))

	r := New(tbl, keycatalog.New()).Validate()
	assert.False(t, r.Valid)
	assert.Equal(t, "key_catalog", r.Errors[0].Category)
}

func TestValidateCatchesDanglingStartTarget(t *testing.T) {
	tbl := instr.NewTable()
	start := instr.New("s1", instr.Start, 1)
	start.Ref = "missing"
	require.NoError(t, tbl.Insert(start))

	r := New(tbl, keycatalog.New()).Validate()
	assert.False(t, r.Valid)
}

func TestValidateCatchesUnresolvedGroupMember(t *testing.T) {
	tbl := instr.NewTable()
	g := instr.New("g1", instr.Group, 1)
	g.Children = []string{"missing"}
	require.NoError(t, tbl.Insert(g))

	r := New(tbl, keycatalog.New()).Validate()
	assert.False(t, r.Valid)
}

func TestValidatePassesCleanScript(t *testing.T) {
	tbl := instr.NewTable()
	p := instr.New("p1", instr.Press, 1)
	p.KeyRef = "a"
	require.NoError(t, tbl.Insert(p))

	r := New(tbl, keycatalog.New()).Validate()
	assert.True(t, r.Valid)
}

func TestWarnUnreachableDefinition(t *testing.T) {
	tbl := instr.NewTable()
	win := instr.New("win1", instr.Window, 1)
	win.KeyRef = "Notepad"
	require.NoError(t, tbl.Insert(win))

	r := New(tbl, keycatalog.New()).Validate()
	assert.True(t, r.Valid)
	assert.Len(t, r.Warnings, 1)
	assert.Equal(t, "unreachable", r.Warnings[0].Category)
}

func TestFormatHumanValid(t *testing.T) {
	r := &Result{Valid: true}
	assert.Equal(t, "Script valid.\n", FormatHuman(r))
}

func TestFormatJSONRoundTrips(t *testing.T) {
	r := &Result{Valid: false, Errors: []Issue{{Category: "x", Message: "y"}}}
	out, err := FormatJSON(r)
	require.NoError(t, err)
	assert.Contains(t, out, "\"valid\": false")
}
