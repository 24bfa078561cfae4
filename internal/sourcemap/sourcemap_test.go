package sourcemap

import (
	"strings"
	"testing"

	"github.com/go-sass/sass/internal/logger"
)

func TestEncodeRoundTripsFirstColumn(t *testing.T) {
	b := NewBuilder()
	src := &logger.Source{Index: 0, PrettyPath: "a.scss", Contents: "a{}"}
	idx := b.AddSource(src, false)
	b.AddMapping(Mapping{GeneratedLine: 0, GeneratedColumn: 0, SourceIndex: idx, OriginalLine: 0, OriginalColumn: 0})
	b.AddMapping(Mapping{GeneratedLine: 0, GeneratedColumn: 5, SourceIndex: idx, OriginalLine: 0, OriginalColumn: 2})

	encoded := b.Encode()
	if encoded == "" {
		t.Fatalf("expected non-empty mappings")
	}
	first := strings.Split(encoded, ",")[0]
	value, _ := DecodeVLQ([]byte(first), 0)
	if value != 0 {
		t.Fatalf("expected first generated column delta 0, got %d", value)
	}
}

func TestJSONIncludesSourcesAndEmptyNames(t *testing.T) {
	b := NewBuilder()
	src := &logger.Source{Index: 0, PrettyPath: "a.scss", Contents: "a{}"}
	b.AddSource(src, true)
	out := b.JSON("out.css")
	for _, want := range []string{`"version":3`, `"sources":["a.scss"]`, `"names":[]`, `"sourcesContent":["a{}"]`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected JSON to contain %q, got %s", want, out)
		}
	}
}
