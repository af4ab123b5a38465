package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanscript-lang/beanscript/internal/instr"
	"github.com/beanscript-lang/beanscript/internal/keycatalog"
	"github.com/beanscript-lang/beanscript/internal/param"
)

func TestParseSkipsBlankAndNoneLines(t *testing.T) {
	lines, err := Parse("\n   \nnone foo\nkey k1 with button a\n")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "k1", lines[0].Inst.ID)
}

func TestParseKeyWithButton(t *testing.T) {
	lines, err := Parse("key k1 with button a")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, instr.Key, lines[0].Inst.Kind)
	assert.Equal(t, "a", lines[0].Inst.KeyRef)
}

func TestParseMultiWordID(t *testing.T) {
	lines, err := Parse("script My Long Script with k1")
	require.NoError(t, err)
	assert.Equal(t, "My Long Script", lines[0].Inst.ID)
}

func TestParseParameterRangeOneValue(t *testing.T) {
	lines, err := Parse("press p1 with duration 100")
	require.NoError(t, err)
	r := lines[0].Inst.Params.Get(param.Duration)
	assert.Equal(t, param.Range{Lo: 100, Hi: 100}, r)
}

func TestParseParameterRangeTwoValues(t *testing.T) {
	lines, err := Parse("press p1 with duration 50 70")
	require.NoError(t, err)
	r := lines[0].Inst.Params.Get(param.Duration)
	assert.Equal(t, param.Range{Lo: 50, Hi: 70}, r)
}

func TestParseRejectsNonNumericParameter(t *testing.T) {
	_, err := Parse("press p1 with duration abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-numeric")
}

func TestParseRejectsTooManyParameterValues(t *testing.T) {
	_, err := Parse("press p1 with duration 1 2 3")
	require.Error(t, err)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse("frobnicate f1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestParseBareReferenceOnNamedInstructionBecomesChild(t *testing.T) {
	lines, err := Parse("group g1 with a, b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, lines[0].Inst.Children)
}

func TestParsePressIDTokenIsDeferredAsTentativeReference(t *testing.T) {
	lines, err := Parse("press base with repeat 2")
	require.NoError(t, err)
	assert.Equal(t, "", lines[0].Inst.ID)
	assert.Equal(t, "base", lines[0].Inst.Ref)
	r := lines[0].Inst.Params.Get(param.Repeat)
	assert.Equal(t, param.Range{Lo: 2, Hi: 2}, r)
}

func TestParseStartRoutesIDIntoRef(t *testing.T) {
	lines, err := Parse("start r")
	require.NoError(t, err)
	assert.Equal(t, "", lines[0].Inst.ID)
	assert.Equal(t, "r", lines[0].Inst.Ref)
}

func TestParseStartWithoutTargetIsFatal(t *testing.T) {
	_, err := Parse("start")
	require.Error(t, err)
}

func TestParseInplaceWithNoIDLeavesRefEmpty(t *testing.T) {
	lines, err := Parse("press with button a")
	require.NoError(t, err)
	assert.Equal(t, "", lines[0].Inst.ID)
	assert.Equal(t, "", lines[0].Inst.Ref)
	assert.Equal(t, "a", lines[0].Inst.KeyRef)
}

func TestParseWithClauseBareReferenceAlwaysBecomesChild(t *testing.T) {
	lines, err := Parse("press with button a, other")
	require.NoError(t, err)
	assert.Equal(t, []string{"other"}, lines[0].Inst.Children)
}

func TestParseThenResolveMintsAliasForExistingReference(t *testing.T) {
	lines, err := Parse("key base with button q\npress base with repeat 2\n")
	require.NoError(t, err)

	res, err := Resolve(lines)
	require.NoError(t, err)
	exec := res.Table.ExecutionList()
	require.Len(t, exec, 1)
	assert.Equal(t, "Alias_00(base)", exec[0].ID)
	assert.Equal(t, "base", exec[0].Ref)
}

func TestParseThenResolveWiresStartStopToDistinctAliases(t *testing.T) {
	lines, err := Parse("key a with button a\nkey b with button b\nroutine r with a, b\nstart r\nstop r\n")
	require.NoError(t, err)

	res, err := Resolve(lines)
	require.NoError(t, err)
	exec := res.Table.ExecutionList()
	require.Len(t, exec, 2)
	assert.NotEqual(t, exec[0].ID, exec[1].ID)
	assert.Equal(t, "r", exec[0].Ref)
	assert.Equal(t, "r", exec[1].Ref)
}

func TestParseIndentCountsTabsAsFour(t *testing.T) {
	lines, err := Parse("group g1\n\tpress p1 with button a\n")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 0, lines[0].Indent)
	assert.Equal(t, 4, lines[1].Indent)
}

func TestParseThenResolveBuildsExecutionList(t *testing.T) {
	lines, err := Parse("press p1 with button a\npress p2 with button b")
	require.NoError(t, err)

	res, err := Resolve(lines)
	require.NoError(t, err)
	require.Len(t, res.Table.ExecutionList(), 2)
}

func TestValidateButtonsCatchesUnknownKey(t *testing.T) {
	lines, err := Parse("key k1 with button not-a-key")
	require.NoError(t, err)

	err = ValidateButtons(lines, keycatalog.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestValidateButtonsPassesKnownKey(t *testing.T) {
	lines, err := Parse("key k1 with button a")
	require.NoError(t, err)

	assert.NoError(t, ValidateButtons(lines, keycatalog.New()))
}
