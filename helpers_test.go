package anew

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tempDir returns a fresh directory with symlinks in its path resolved, so
// canonicalized sources and the working directory agree.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func testLogger() *slog.Logger {
	return NewLogger(io.Discard, slog.LevelDebug)
}

func newTestApp(t *testing.T, wd string) *App {
	t.Helper()
	app, err := NewAppAt(&Config{StoreDir: filepath.Join(tempDir(t), "store")}, NewPathResolverAt(wd), testLogger())
	require.NoError(t, err)
	return app
}
