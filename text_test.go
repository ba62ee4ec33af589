package modui

import "testing"

// All measurements below use the fixed-advance fallback measurer: every rune
// is 6px wide and a line is 10px tall before scaling.

func TestWrapTextExplicitNewlines(t *testing.T) {
	lines := wrapText("one\ntwo\nthree", 0)
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "one" || lines[2] != "three" {
		t.Errorf("lines = %v", lines)
	}
}

func TestWrapTextAutoWrap(t *testing.T) {
	// 10 runes at 6px = 60px; wrap at 30px gives two 5-rune lines.
	lines := wrapText("aaaaabbbbb", 30)
	if len(lines) != 2 {
		t.Fatalf("lines = %v, want 2 entries", lines)
	}
	if lines[0] != "aaaaa" || lines[1] != "bbbbb" {
		t.Errorf("lines = %v", lines)
	}
}

func TestWrapTextTinyWidthAdvancesOneRune(t *testing.T) {
	lines := wrapText("abc", 1)
	if len(lines) != 3 {
		t.Fatalf("lines = %v, want one rune per line", lines)
	}
}

func TestContentWidthWidestLine(t *testing.T) {
	n := NewNode("t", NodeText)
	n.Text = "ab\nabcd\nabc"
	assertFloat(t, n.ContentWidth(), 4*fixedAdvanceWidth, "ContentWidth")

	n.FontSize = 2
	assertFloat(t, n.ContentWidth(), 8*fixedAdvanceWidth, "ContentWidth scaled")
}

func TestContentHeightLinesAndPadding(t *testing.T) {
	n := NewNode("t", NodeText)
	n.Text = "a\nb\nc"
	assertFloat(t, n.ContentHeight(), 30, "ContentHeight 3 lines")

	n.LinePadding = 2
	assertFloat(t, n.ContentHeight(), 34, "ContentHeight with padding")

	n.FontSize = 2
	assertFloat(t, n.ContentHeight(), 68, "ContentHeight scaled")
}

func TestContentSizeNonText(t *testing.T) {
	n := NewNode("p", NodePanel)
	if n.ContentWidth() != -1 || n.ContentHeight() != -1 {
		t.Error("non-text nodes have no intrinsic content size")
	}
}

func TestLineCountWrapRequiresExplicitWidth(t *testing.T) {
	n := NewNode("t", NodeText)
	n.Text = "aaaaabbbbb" // 60px unwrapped
	n.Width = 30

	// No width expression: explicit newlines only.
	if got := n.lineCount(); got != 1 {
		t.Errorf("lineCount without SizeX = %d, want 1", got)
	}

	n.SizeX = AbsoluteExpr(30)
	if got := n.lineCount(); got != 2 {
		t.Errorf("lineCount with SizeX = %d, want 2", got)
	}
}

func TestWrappedLinesScalesWrapWidthByFontSize(t *testing.T) {
	n := NewNode("t", NodeText)
	n.Text = "aaaaabbbbb"
	n.SizeX = AbsoluteExpr(60)
	n.Width = 60
	n.FontSize = 2

	// 60px at scale 2 leaves 30 unscaled pixels: 5 runes per line.
	lines := n.WrappedLines()
	if len(lines) != 2 {
		t.Fatalf("WrappedLines = %v, want 2 entries", lines)
	}
}

func TestSetTextMeasurerOverride(t *testing.T) {
	defer SetTextMeasurer(nil)
	SetTextMeasurer(doubleAdvance{})

	n := NewNode("t", NodeText)
	n.Text = "abc"
	assertFloat(t, n.ContentWidth(), 36, "ContentWidth with override")

	SetTextMeasurer(nil)
	assertFloat(t, n.ContentWidth(), 18, "ContentWidth restored")
}

type doubleAdvance struct{}

func (doubleAdvance) LineWidth(line string) float64 {
	return float64(len([]rune(line))) * 12
}

func (doubleAdvance) TrimToWidth(line string, maxWidth float64) string {
	runes := []rune(line)
	fit := int(maxWidth / 12)
	if fit >= len(runes) {
		return line
	}
	if fit < 0 {
		fit = 0
	}
	return string(runes[:fit])
}
