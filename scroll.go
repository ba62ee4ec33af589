package modui

import "time"

// Scrollbar geometry and auto-hide timing.
const (
	scrollbarWidth      = 6.0
	scrollbarPadding    = 2.0
	scrollThumbMinH     = 20.0
	scrollFadeIn        = 150 * time.Millisecond
	scrollFadeOut       = 300 * time.Millisecond
	scrollInactivity    = 1500 * time.Millisecond
	scrollHoverZone     = 20.0 // extra pixels left of the track that count as "near"
	scrollPageFraction  = 0.8  // viewport fraction scrolled per track click
)

// scrollbarState is the render-side fade/interaction state of a scroll node's
// scrollbar. It never feeds back into layout.
type scrollbarState struct {
	alpha        float64
	alphaTarget  float64
	lastActivity time.Time
	lastFrame    time.Time
	mouseNear    bool
	dragging     bool
	thumbHovered bool
}

// --- Scroll offset ---

// MaxScrollOffset returns the scrollable range: content height beyond the
// viewport, never negative.
func (n *Node) MaxScrollOffset() float64 {
	m := n.contentH - n.Height
	if m < 0 {
		return 0
	}
	return m
}

// ScrollOffset returns the current vertical scroll offset (0 = top).
func (n *Node) ScrollOffset() float64 {
	return n.scrollOffset
}

// SetScrollOffset sets the offset, clamped to [0, MaxScrollOffset].
func (n *Node) SetScrollOffset(offset float64) {
	max := n.MaxScrollOffset()
	if offset < 0 {
		offset = 0
	} else if offset > max {
		offset = max
	}
	n.scrollOffset = offset
}

// SetScrollPercent sets the offset to the given percentage of the scrollable
// range, clamped.
func (n *Node) SetScrollPercent(percent int) {
	n.SetScrollOffset(n.MaxScrollOffset() * float64(percent) / 100)
}

// setScrollPercentDeferred records a percent offset to apply once the next
// layout pass has resolved the content size.
func (n *Node) setScrollPercentDeferred(percent int) {
	n.pendingPercent = percent
	n.hasPendingScroll = true
}

// applyPendingScrollPercent resolves a deferred percent offset. Called by the
// layout pass after content dimensions are known.
func (n *Node) applyPendingScrollPercent() {
	if !n.hasPendingScroll {
		return
	}
	n.hasPendingScroll = false
	n.scrollOffset = n.MaxScrollOffset() * float64(n.pendingPercent) / 100
}

// ContentSize returns the resolved scroll content dimensions.
func (n *Node) ContentSize() (w, h float64) {
	return n.contentW, n.contentH
}

// --- Scrollbar geometry ---

// ScrollTrackBounds returns the scrollbar track rectangle, or false when the
// content fits the viewport and no scrollbar exists.
func (n *Node) ScrollTrackBounds() (Rect, bool) {
	if n.MaxScrollOffset() <= 0 {
		return Rect{}, false
	}
	return Rect{
		X:      n.X + n.Width - scrollbarWidth - scrollbarPadding,
		Y:      n.Y + scrollbarPadding,
		Width:  scrollbarWidth,
		Height: n.Height - scrollbarPadding*2,
	}, true
}

// ScrollThumbBounds returns the thumb rectangle within the track, or false
// when no scrollbar exists.
func (n *Node) ScrollThumbBounds() (Rect, bool) {
	maxScroll := n.MaxScrollOffset()
	if maxScroll <= 0 {
		return Rect{}, false
	}
	track, ok := n.ScrollTrackBounds()
	if !ok {
		return Rect{}, false
	}
	thumbH := n.Height / n.contentH * track.Height
	if thumbH < scrollThumbMinH {
		thumbH = scrollThumbMinH
	}
	thumbY := track.Y + n.scrollOffset/maxScroll*(track.Height-thumbH)
	return Rect{X: track.X, Y: thumbY, Width: scrollbarWidth, Height: thumbH}, true
}

// PointOnThumb reports whether a point is on the scrollbar thumb.
func (n *Node) PointOnThumb(x, y float64) bool {
	thumb, ok := n.ScrollThumbBounds()
	return ok && thumb.Contains(x, y)
}

// PointOnTrack reports whether a point is on the track but not the thumb.
func (n *Node) PointOnTrack(x, y float64) bool {
	track, ok := n.ScrollTrackBounds()
	return ok && track.Contains(x, y) && !n.PointOnThumb(x, y)
}

// HandleTrackClick page-scrolls toward the clicked position.
func (n *Node) HandleTrackClick(mouseY float64) {
	thumb, ok := n.ScrollThumbBounds()
	if !ok {
		return
	}
	page := n.Height * scrollPageFraction
	if mouseY < thumb.Y+thumb.Height/2 {
		n.SetScrollOffset(n.scrollOffset - page)
	} else {
		n.SetScrollOffset(n.scrollOffset + page)
	}
}

// TrackDeltaToScrollDelta converts a thumb-drag delta in track pixels to a
// scroll offset delta.
func (n *Node) TrackDeltaToScrollDelta(trackDy float64) float64 {
	track, ok := n.ScrollTrackBounds()
	if !ok {
		return 0
	}
	thumbH := n.Height / n.contentH * track.Height
	if thumbH < scrollThumbMinH {
		thumbH = scrollThumbMinH
	}
	scrollable := track.Height - thumbH
	if scrollable <= 0 {
		return 0
	}
	return trackDy * n.MaxScrollOffset() / scrollable
}

// --- Scrollbar auto-hide ---

// NotifyScrollbarActivity resets the inactivity timer and fades the bar in.
func (n *Node) NotifyScrollbarActivity(now time.Time) {
	n.scrollbar.lastActivity = now
	n.scrollbar.alphaTarget = 1
}

// PointNearScrollbar reports whether a point is on or just left of the track.
func (n *Node) PointNearScrollbar(x, y float64) bool {
	track, ok := n.ScrollTrackBounds()
	if !ok {
		return false
	}
	return x >= track.X-scrollHoverZone && x < track.X+track.Width &&
		y >= track.Y && y < track.Y+track.Height
}

// SetMouseNearScrollbar updates hover proximity; entering fades the bar in,
// leaving starts the inactivity countdown.
func (n *Node) SetMouseNearScrollbar(near bool, now time.Time) {
	wasNear := n.scrollbar.mouseNear
	n.scrollbar.mouseNear = near
	if near && !wasNear {
		n.NotifyScrollbarActivity(now)
	} else if !near && wasNear {
		n.scrollbar.lastActivity = now
	}
}

// SetScrollbarDragging marks the thumb as being dragged, keeping the bar
// visible for the duration.
func (n *Node) SetScrollbarDragging(dragging bool, now time.Time) {
	n.scrollbar.dragging = dragging
	if dragging {
		n.NotifyScrollbarActivity(now)
	}
}

// SetThumbHovered updates the thumb hover highlight.
func (n *Node) SetThumbHovered(hovered bool) {
	n.scrollbar.thumbHovered = hovered
}

// ScrollbarInteractable reports whether the bar is visible enough to grab.
func (n *Node) ScrollbarInteractable() bool {
	return n.scrollbar.alpha >= 0.1
}

// ScrollbarAlpha advances the fade animation and returns the current bar
// alpha. Called once per painted frame.
func (n *Node) ScrollbarAlpha(now time.Time) float64 {
	sb := &n.scrollbar
	dt := 1.0 / 60
	if !sb.lastFrame.IsZero() {
		dt = now.Sub(sb.lastFrame).Seconds()
		if dt > 0.1 {
			dt = 0.1
		}
	}
	sb.lastFrame = now

	if !sb.mouseNear && !sb.dragging && sb.alphaTarget > 0 {
		if now.Sub(sb.lastActivity) >= scrollInactivity {
			sb.alphaTarget = 0
		}
	}

	if sb.alpha < sb.alphaTarget {
		sb.alpha += dt / scrollFadeIn.Seconds()
		if sb.alpha > sb.alphaTarget {
			sb.alpha = sb.alphaTarget
		}
	} else if sb.alpha > sb.alphaTarget {
		sb.alpha -= dt / scrollFadeOut.Seconds()
		if sb.alpha < sb.alphaTarget {
			sb.alpha = sb.alphaTarget
		}
	}
	return sb.alpha
}

// ThumbHovered reports the current thumb hover highlight state.
func (n *Node) ThumbHovered() bool {
	return n.scrollbar.thumbHovered
}
