package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireScriptLockRejectsSecondHolder(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "sample.bs")

	first, err := AcquireScriptLock(script)
	require.NoError(t, err)
	defer first.Release()

	_, err = AcquireScriptLock(script)
	assert.Error(t, err)
}

func TestAcquireScriptLockDifferentScriptsDontContend(t *testing.T) {
	dir := t.TempDir()

	a, err := AcquireScriptLock(filepath.Join(dir, "a.bs"))
	require.NoError(t, err)
	defer a.Release()

	b, err := AcquireScriptLock(filepath.Join(dir, "b.bs"))
	require.NoError(t, err)
	defer b.Release()
}
