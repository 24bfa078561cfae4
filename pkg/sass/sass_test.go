package sass

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompileStringBasic(t *testing.T) {
	result, err := CompileString(`
$base: 10px;
.box {
  padding: $base * 2;
  &:hover { color: blue; }
}
`, "entry.scss", Options{})
	require.NoError(t, err)
	require.Contains(t, result.CSS, ".box {")
	require.Contains(t, result.CSS, "padding: 20px;")
	require.Contains(t, result.CSS, ".box:hover {")
}

func TestCompileStringCompressedStyle(t *testing.T) {
	result, err := CompileString(`.a { color: red; }`, "entry.scss", Options{Style: Compressed})
	require.NoError(t, err)
	require.Equal(t, ".a{color:red;}", result.CSS)
}

func TestCompileStringSyntaxError(t *testing.T) {
	_, err := CompileString(`.a { color }`, "entry.scss", Options{})
	require.Error(t, err)
	var sassErr *Error
	require.True(t, errors.As(err, &sassErr))
	require.Equal(t, "SyntaxError", sassErr.Kind)
	require.NotEmpty(t, sassErr.CompilationID)
}

func TestCompileStringUndefinedVariable(t *testing.T) {
	_, err := CompileString(`.a { color: $missing; }`, "entry.scss", Options{})
	require.Error(t, err)
	var sassErr *Error
	require.True(t, errors.As(err, &sassErr))
	require.Equal(t, "UndefinedVariable", sassErr.Kind)
}

func TestCompileStringExtend(t *testing.T) {
	result, err := CompileString(`
%message { border: 1px solid; }
.warning { @extend %message; color: orange; }
`, "entry.scss", Options{})
	require.NoError(t, err)
	require.Contains(t, result.CSS, ".warning {")
	require.NotContains(t, result.CSS, "%message")
}

func TestCompileStringSourceMap(t *testing.T) {
	result, err := CompileString(`.a { color: red; }`, "entry.scss", Options{SourceMapEnabled: true})
	require.NoError(t, err)
	require.NotEmpty(t, result.SourceMap)
	require.Contains(t, result.SourceMap, "entry.scss")
}
