package sassast

import "testing"

func TestInterpBuilderMergesAdjacentText(t *testing.T) {
	var b InterpBuilder
	b.AddText("a").AddText("b").AddExpr(&NullLit{}).AddText("c").AddText("d")
	segs := b.Build()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Text != "ab" || segs[2].Text != "cd" {
		t.Fatalf("adjacent text segments were not merged: %+v", segs)
	}
	if !segs[1].IsExpr {
		t.Fatalf("expected middle segment to be an expression")
	}
}

func TestIsPlainTextDetection(t *testing.T) {
	plain := PlainInterpolation("hello")
	if !plain.IsPlainText() || plain.PlainText() != "hello" {
		t.Fatalf("expected plain interpolation to round-trip")
	}

	var b InterpBuilder
	b.AddText("a").AddExpr(&NullLit{})
	if b.Build().IsPlainText() {
		t.Fatalf("expected interpolation with an expression to not be plain text")
	}
}
