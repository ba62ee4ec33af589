package modui

import "strings"

// Anchor is a normalized (0..1) reference point on a rectangle. An element's
// base position aligns the parent's anchor-from point with the element's own
// anchor-to point before position offsets apply.
type Anchor struct {
	X, Y float64
}

var (
	AnchorTopLeft      = Anchor{0, 0}
	AnchorTopMiddle    = Anchor{0.5, 0}
	AnchorTopRight     = Anchor{1, 0}
	AnchorLeftMiddle   = Anchor{0, 0.5}
	AnchorCenter       = Anchor{0.5, 0.5}
	AnchorRightMiddle  = Anchor{1, 0.5}
	AnchorBottomLeft   = Anchor{0, 1}
	AnchorBottomMiddle = Anchor{0.5, 1}
	AnchorBottomRight  = Anchor{1, 1}
)

// AnchorFromString maps a wire anchor name to an Anchor.
// Empty or unknown names resolve to center.
func AnchorFromString(name string) Anchor {
	switch strings.ToLower(name) {
	case "top_left":
		return AnchorTopLeft
	case "top_middle":
		return AnchorTopMiddle
	case "top_right":
		return AnchorTopRight
	case "left_middle":
		return AnchorLeftMiddle
	case "center":
		return AnchorCenter
	case "right_middle":
		return AnchorRightMiddle
	case "bottom_left":
		return AnchorBottomLeft
	case "bottom_middle":
		return AnchorBottomMiddle
	case "bottom_right":
		return AnchorBottomRight
	default:
		return AnchorCenter
	}
}
