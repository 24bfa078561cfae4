package logger

import "testing"

func TestLineAndColumn(t *testing.T) {
	source := &Source{Contents: "a {\n  color: $c;\n}"}
	line, col, text := source.LineAndColumn(13) // points at "$c"
	if line != 2 {
		t.Fatalf("expected line 2, got %d", line)
	}
	if col != 9 {
		t.Fatalf("expected column 9, got %d", col)
	}
	if text != "  color: $c;" {
		t.Fatalf("unexpected line text: %q", text)
	}
}

func TestLogSortsByLocation(t *testing.T) {
	log := NewLog()
	source := &Source{PrettyPath: "a.scss", Contents: "a\nb\nc"}
	log.AddError(source, Range{Loc: Loc{Start: 4}}, "second")
	log.AddError(source, Range{Loc: Loc{Start: 0}}, "first")

	msgs := log.Done()
	if len(msgs) != 2 || msgs[0].Data.Text != "first" || msgs[1].Data.Text != "second" {
		t.Fatalf("unexpected order: %+v", msgs)
	}
	if !log.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
}
