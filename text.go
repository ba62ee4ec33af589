package modui

import "strings"

// referenceLineHeight is the unscaled line height of the reference font.
// Text content height is always expressed in multiples of it.
const referenceLineHeight = 10.0

// TextMeasurer reports the unscaled pixel width of a single line of text.
// The render backend installs a font-accurate measurer; the default
// fixed-advance measurer keeps layout deterministic when no backend is
// attached (tests, headless use).
type TextMeasurer interface {
	LineWidth(line string) float64
	// TrimToWidth returns the longest prefix of line that fits in maxWidth.
	TrimToWidth(line string, maxWidth float64) string
}

// fixedAdvance measures every rune at a constant advance, the reference
// font's average glyph width.
type fixedAdvance struct{}

const fixedAdvanceWidth = 6.0

func (fixedAdvance) LineWidth(line string) float64 {
	return float64(len([]rune(line))) * fixedAdvanceWidth
}

func (fixedAdvance) TrimToWidth(line string, maxWidth float64) string {
	runes := []rune(line)
	fit := int(maxWidth / fixedAdvanceWidth)
	if fit >= len(runes) {
		return line
	}
	if fit < 0 {
		fit = 0
	}
	return string(runes[:fit])
}

// textMeasure is the active measurer. Package-level rather than per-tree:
// all surfaces in a process share one font backend.
var textMeasure TextMeasurer = fixedAdvance{}

// SetTextMeasurer installs a measurer backed by the render backend's font.
// Passing nil restores the fixed-advance default.
func SetTextMeasurer(m TextMeasurer) {
	if m == nil {
		textMeasure = fixedAdvance{}
		return
	}
	textMeasure = m
}

// wrapText splits text into lines, honoring explicit \n and auto-wrapping at
// maxWidth (unscaled pixels). maxWidth <= 0 disables auto-wrapping.
func wrapText(text string, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, segment := range strings.Split(text, "\n") {
		if maxWidth <= 0 || textMeasure.LineWidth(segment) <= maxWidth {
			lines = append(lines, segment)
			continue
		}
		remaining := segment
		for remaining != "" {
			trimmed := textMeasure.TrimToWidth(remaining, maxWidth)
			if trimmed == "" {
				// At least one character per line to avoid an infinite loop.
				trimmed = string([]rune(remaining)[:1])
			}
			lines = append(lines, trimmed)
			remaining = remaining[len(trimmed):]
		}
	}
	return lines
}

// lineCount returns how many lines the node's text occupies. Wrapping only
// applies when the node has an explicit width expression; otherwise only
// explicit newlines count.
func (n *Node) lineCount() int {
	if n.Text == "" {
		return 1
	}
	if n.SizeX != nil && n.Width > 0 && n.FontSize > 0 {
		wrapWidth := n.Width / n.FontSize
		if lines := wrapText(n.Text, wrapWidth); len(lines) > 0 {
			return len(lines)
		}
		return 1
	}
	return strings.Count(n.Text, "\n") + 1
}

// ContentWidth returns the intrinsic pixel width of the node, or -1 when the
// type has none. For text this is the widest unwrapped line scaled by font
// size.
func (n *Node) ContentWidth() float64 {
	if n.Type != NodeText {
		return -1
	}
	if n.Text == "" {
		return 0
	}
	maxW := 0.0
	for _, seg := range strings.Split(n.Text, "\n") {
		if w := textMeasure.LineWidth(seg); w > maxW {
			maxW = w
		}
	}
	return maxW * n.FontSize
}

// ContentHeight returns the intrinsic pixel height of the node, or -1 when
// the type has none. Text height is line count times the reference line
// height plus inter-line padding, scaled by font size.
func (n *Node) ContentHeight() float64 {
	if n.Type != NodeText {
		return -1
	}
	lines := n.lineCount()
	padding := float64(lines-1) * n.LinePadding
	if padding < 0 {
		padding = 0
	}
	return (float64(lines)*referenceLineHeight + padding) * n.FontSize
}

// WrappedLines returns the node's text split for painting, wrapped at the
// resolved width when an explicit width expression is set.
func (n *Node) WrappedLines() []string {
	wrapWidth := -1.0
	if n.SizeX != nil && n.Width > 0 && n.FontSize > 0 {
		wrapWidth = n.Width / n.FontSize
	}
	lines := wrapText(n.Text, wrapWidth)
	if len(lines) == 0 && n.Text != "" {
		lines = []string{n.Text}
	}
	return lines
}
