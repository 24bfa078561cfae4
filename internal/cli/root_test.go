package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTargetsFileForm(t *testing.T) {
	targets, err := parseTargets([]string{"a.scss:a.css", "b.scss"}, false)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	require.Equal(t, "a.scss", targets[0].input)
	require.Equal(t, "a.css", targets[0].output)
	require.True(t, targets[1].writeStdout)
}

func TestParseTargetsStdin(t *testing.T) {
	targets, err := parseTargets([]string{"out.css"}, true)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.True(t, targets[0].useStdin)
	require.Equal(t, "out.css", targets[0].output)
}

func TestParseTargetsRequiresInput(t *testing.T) {
	_, err := parseTargets(nil, false)
	require.Error(t, err)
}

func TestExpandDirPairSkipsPartials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.scss"), []byte("a{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_partial.scss"), []byte("a{}"), 0o644))

	targets, err := expandDirPair(dir, "out")
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, filepath.Join(dir, "main.scss"), targets[0].input)
	require.Equal(t, filepath.Join("out", "main.css"), targets[0].output)
}

func TestRunRejectsBadStyle(t *testing.T) {
	code, err := run([]string{"x.scss"}, &flags{style: "bogus"})
	require.Error(t, err)
	require.Equal(t, ExitUsage, code)
}
