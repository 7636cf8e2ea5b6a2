package anew

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateStore_CreatesMissingDirectories(t *testing.T) {
	dir := filepath.Join(tempDir(t), "deep", "templates")

	store, err := LocateStore(dir, testLogger())
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir)
	assert.DirExists(t, dir)
}

func TestLocateStore_ExistingDirectory(t *testing.T) {
	dir := tempDir(t)
	writeFile(t, filepath.Join(dir, "keep", "file.txt"), "x")

	store, err := LocateStore(dir, testLogger())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(store.Dir, "keep", "file.txt"))
}

func TestLocateStore_DefaultsToHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home is not taken from $HOME on this platform")
	}
	home := tempDir(t)
	t.Setenv("HOME", home)

	store, err := LocateStore("", testLogger())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".anew", "templates"), store.Dir)
	assert.DirExists(t, store.Dir)
}

func TestDefaultStoreDir_NoHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home is not taken from $HOME on this platform")
	}
	t.Setenv("HOME", "")

	_, err := DefaultStoreDir()
	assert.ErrorIs(t, err, ErrNoHome)
}

func TestLocateStore_FileInTheWay(t *testing.T) {
	dir := filepath.Join(tempDir(t), "templates")
	require.NoError(t, os.WriteFile(dir, []byte("not a dir"), 0644))

	_, err := LocateStore(dir, testLogger())
	assert.Error(t, err)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"go-cli", "my template", ".dotfiles", "a.b"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestStore_Exists(t *testing.T) {
	store, err := LocateStore(tempDir(t), testLogger())
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(store.Dir, "present"), 0755))
	assert.True(t, store.Exists("present"))
	assert.False(t, store.Exists("absent"))
	assert.False(t, store.Exists(".."))
}

func TestStore_ExistsDanglingLink(t *testing.T) {
	skipWithoutSymlinks(t)
	store, err := LocateStore(tempDir(t), testLogger())
	require.NoError(t, err)

	require.NoError(t, os.Symlink(filepath.Join(tempDir(t), "gone"), filepath.Join(store.Dir, "dangling")))
	assert.True(t, store.Exists("dangling"))
}
