package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// AcquireScriptLock enforces BeanScript's single-instance-per-script rule:
// two runtimes driving the same .bs file at once would both claim the same
// key-press schedule and race each other's Down/Up calls into the OS.
// The lock is keyed by the script's absolute path so unrelated scripts,
// even same-named ones in different directories, never contend.
func AcquireScriptLock(scriptPath string) (*PIDLock, error) {
	abs, err := filepath.Abs(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("resolve script path %q: %w", scriptPath, err)
	}

	sum := sha256.Sum256([]byte(abs))
	lockPath := filepath.Join(os.TempDir(), "beanscript", hex.EncodeToString(sum[:8])+".lock")

	l, err := AcquirePIDLock(lockPath)
	if err != nil {
		return nil, fmt.Errorf("script %q is already running (lock %s): %w", abs, lockPath, err)
	}
	return l, nil
}
