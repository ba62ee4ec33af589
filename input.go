package modui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// wheelScrollStep is the scroll offset change per wheel notch, in pixels.
const wheelScrollStep = 20.0

// InputHandler routes pointer input into one surface: button hover/press/
// click, wheel scrolling, scrollbar thumb drag and track paging, and element
// dragging. The Pointer*/Wheel methods take explicit coordinates so logic is
// testable without a window; Process reads the live ebiten mouse state and
// feeds them.
type InputHandler struct {
	surface *Surface

	scrollbarDrag      *Node // scroll node whose thumb is being dragged
	scrollbarDragLastY float64
	activeDraggable    *Node

	prevPressed bool
}

// NewInputHandler binds a handler to a surface.
func NewInputHandler(s *Surface) *InputHandler {
	return &InputHandler{surface: s}
}

// Process reads the current ebiten mouse state and dispatches one frame of
// input. Call once per frame before Surface.Update.
func (h *InputHandler) Process(now time.Time) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	h.PointerMove(x, y, now)
	switch {
	case pressed && !h.prevPressed:
		h.PointerDown(x, y, now)
	case pressed && h.prevPressed:
		h.PointerDrag(x, y, now)
	case !pressed && h.prevPressed:
		h.PointerUp(x, y, now)
	}
	h.prevPressed = pressed

	if _, wy := ebiten.Wheel(); wy != 0 {
		h.Wheel(x, y, wy, now)
	}
}

// PointerMove updates hover state: button hover flags, scrollbar thumb hover,
// and the scrollbar proximity zone that drives fade-in.
func (h *InputHandler) PointerMove(x, y float64, now time.Time) {
	root := h.root()
	if root == nil {
		return
	}
	updateHover(root, x, y, now)
}

func updateHover(n *Node, x, y float64, now time.Time) {
	switch n.Type {
	case NodeButton:
		n.Hovered = n.Visible && n.ContainsPoint(x, y)
	case NodeScroll:
		n.SetThumbHovered(n.PointOnThumb(x, y))
		n.SetMouseNearScrollbar(n.PointNearScrollbar(x, y), now)
		// Content outside the viewport is not hoverable.
		if !n.ContainsPoint(x, y) {
			return
		}
	}
	for _, child := range n.Children() {
		updateHover(child, x, y, now)
	}
}

// PointerDown handles a left press. Priority order: scrollbar, then buttons,
// then draggables, so a button inside a draggable area still works.
func (h *InputHandler) PointerDown(x, y float64, now time.Time) bool {
	root := h.root()
	if root == nil {
		return false
	}

	if scroll := findScrollbarAt(root, x, y); scroll != nil {
		if scroll.PointOnThumb(x, y) {
			h.scrollbarDrag = scroll
			h.scrollbarDragLastY = y
			scroll.SetScrollbarDragging(true, now)
		} else {
			scroll.HandleTrackClick(y)
			scroll.NotifyScrollbarActivity(now)
			h.surface.tree.MarkLayoutDirty()
		}
		return true
	}

	if btn := findButtonAt(root, x, y); btn != nil {
		btn.Pressed = true
		return true
	}

	if drag := findDraggableAt(root, x, y); drag != nil {
		h.activeDraggable = drag
		drag.BeginDrag(x, y)
		return true
	}
	return false
}

// PointerDrag handles pointer movement while the button is held.
func (h *InputHandler) PointerDrag(x, y float64, now time.Time) bool {
	if scroll := h.scrollbarDrag; scroll != nil {
		dy := y - h.scrollbarDragLastY
		scroll.SetScrollOffset(scroll.ScrollOffset() + scroll.TrackDeltaToScrollDelta(dy))
		scroll.NotifyScrollbarActivity(now)
		h.scrollbarDragLastY = y
		h.surface.tree.MarkLayoutDirty()
		return true
	}

	if drag := h.activeDraggable; drag != nil {
		if drag.ProcessDrag(x, y) {
			h.surface.tree.MarkLayoutDirty()
		}
		return true
	}
	return false
}

// PointerUp handles release: finishes scrollbar or element drags, fires the
// button click under the cursor, and clears every pressed flag.
func (h *InputHandler) PointerUp(x, y float64, now time.Time) bool {
	if scroll := h.scrollbarDrag; scroll != nil {
		scroll.SetScrollbarDragging(false, now)
		h.scrollbarDrag = nil
		return true
	}

	if drag := h.activeDraggable; drag != nil {
		drag.EndDrag()
		h.emitDragMove(drag)
		h.activeDraggable = nil
		return true
	}

	root := h.root()
	if root == nil {
		return false
	}
	handled := false
	if btn := findButtonAt(root, x, y); btn != nil {
		h.surface.EmitButtonClick(btn)
		handled = true
	}
	releaseButtons(root)
	return handled
}

// Wheel scrolls the deepest scrollable node under the pointer.
func (h *InputHandler) Wheel(x, y, amount float64, now time.Time) bool {
	root := h.root()
	if root == nil {
		return false
	}
	scroll := findDeepestScrollAt(root, x, y)
	if scroll == nil {
		return false
	}
	scroll.SetScrollOffset(scroll.ScrollOffset() - amount*wheelScrollStep)
	scroll.NotifyScrollbarActivity(now)
	h.surface.tree.MarkLayoutDirty()
	if h.surface.sink != nil {
		h.surface.sink.EmitEvent(Event{
			Type:  EventScrollChange,
			Name:  scroll.Name,
			Value: scroll.ScrollOffset(),
		})
	}
	return true
}

func (h *InputHandler) emitDragMove(drag *Node) {
	target := drag.DragTarget()
	if target == nil || h.surface.sink == nil {
		return
	}
	var ox, oy float64
	if target.PosX != nil {
		ox = target.PosX.Offset
	}
	if target.PosY != nil {
		oy = target.PosY.Offset
	}
	h.surface.sink.EmitEvent(Event{
		Type: EventDragMove,
		Name: drag.Name,
		X:    ox,
		Y:    oy,
	})
}

func (h *InputHandler) root() *Node {
	if !h.surface.Initialized() {
		return nil
	}
	return h.surface.tree.Root()
}

// --- Hit testing ---
//
// All finders search children in reverse order so later (higher) siblings win,
// and prune a scroll node's subtree when the point lies outside its viewport.

func findButtonAt(n *Node, x, y float64) *Node {
	if n.Type == NodeScroll && !n.ContainsPoint(x, y) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if found := findButtonAt(children[i], x, y); found != nil {
			return found
		}
	}
	if n.Type == NodeButton && n.Visible && n.ContainsPoint(x, y) {
		return n
	}
	return nil
}

func findDraggableAt(n *Node, x, y float64) *Node {
	if n.Type == NodeScroll && !n.ContainsPoint(x, y) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if found := findDraggableAt(children[i], x, y); found != nil {
			return found
		}
	}
	if n.Type == NodeDraggable && n.Visible && n.ContainsPoint(x, y) {
		return n
	}
	return nil
}

// findDeepestScrollAt returns the innermost scrollable node under the point
// that actually has overflow to scroll.
func findDeepestScrollAt(n *Node, x, y float64) *Node {
	if n.Type == NodeScroll && !n.ContainsPoint(x, y) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if found := findDeepestScrollAt(children[i], x, y); found != nil {
			return found
		}
	}
	if n.Type == NodeScroll && n.Visible && n.ContainsPoint(x, y) && n.MaxScrollOffset() > 0 {
		return n
	}
	return nil
}

// findScrollbarAt returns a scroll node whose visible scrollbar track is under
// the point.
func findScrollbarAt(n *Node, x, y float64) *Node {
	if n.Type == NodeScroll && !n.ContainsPoint(x, y) {
		return nil
	}
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if found := findScrollbarAt(children[i], x, y); found != nil {
			return found
		}
	}
	if n.Type == NodeScroll && n.Visible && n.ScrollbarInteractable() && n.ContainsPoint(x, y) {
		if track, ok := n.ScrollTrackBounds(); ok && track.Contains(x, y) {
			return n
		}
	}
	return nil
}

func releaseButtons(n *Node) {
	if n.Type == NodeButton {
		n.Pressed = false
	}
	for _, child := range n.Children() {
		releaseButtons(child)
	}
}
