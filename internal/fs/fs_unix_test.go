//go:build unix

package fs

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipe")
	if err := syscall.Mkfifo(path, 0o644); err != nil {
		t.Skipf("mkfifo unavailable: %v", err)
	}

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrNotRegular)
}

func TestWriteFileAtomicReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("b\n"), 0o666))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	require.NoError(t, WriteFileAtomic(path, []byte("a\nb\n")))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", content)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomicReadOnlyDirectoryNewFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := WriteFileAtomic(filepath.Join(dir, "list.txt"), []byte("a\n"))
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestWriteFileAtomicKeepsSpecialBits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("b\n"), 0o644))
	require.NoError(t, os.Chmod(path, 0o644|os.ModeSetgid))
	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode()&os.ModeSetgid == 0 {
		t.Skip("setgid bit not kept by this filesystem")
	}

	require.NoError(t, WriteFileAtomic(path, []byte("a\nb\n")))

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSetgid)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
