package testutils

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixturePath returns the absolute path of a file under the module's
// testdata directory, independent of the calling package's directory.
func FixturePath(t *testing.T, name string) string {
	t.Helper()

	_, file, _, ok := goruntime.Caller(0)
	require.True(t, ok, "Failed to locate testutils source")

	// internal/testutils/helpers.go -> module root
	root := filepath.Join(filepath.Dir(file), "..", "..")
	return filepath.Join(root, "testdata", name)
}

// Fixture reads a testdata file. It fails the test immediately on error.
func Fixture(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(FixturePath(t, name))
	require.NoError(t, err, "Failed to read fixture %s", name)
	return data
}

// WriteMachine stores a description in a temp dir and returns its path.
func WriteMachine(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write machine file")
	return path
}
