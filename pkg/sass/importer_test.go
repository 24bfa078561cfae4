package sass

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileImporterResolvesPartial(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_colors.scss"), []byte("$c: red;"), 0o644))

	imp := NewFileImporter(nil)
	canon, ok := imp.Canonicalize("colors", filepath.Join(dir, "main.scss"))
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "_colors.scss"), canon)

	loaded, err := imp.Load(canon)
	require.NoError(t, err)
	require.Equal(t, "$c: red;", loaded.Contents)
}

func TestFileImporterFallsBackToLoadPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.scss"), []byte("$x: 1;"), 0o644))

	imp := NewFileImporter([]string{dir})
	canon, ok := imp.Canonicalize("lib", "")
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "lib.scss"), canon)
}

func TestFileImporterResolvesIndex(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "_index.scss"), []byte("$y: 2;"), 0o644))

	imp := NewFileImporter(nil)
	canon, ok := imp.Canonicalize("pkg", filepath.Join(dir, "main.scss"))
	require.True(t, ok)
	require.Equal(t, filepath.Join(sub, "_index.scss"), canon)
}
