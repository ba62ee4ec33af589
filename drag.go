package modui

import "math"

// dragState tracks one draggable container's cursor baseline and boundary.
// The boundary constrains the bound child's position-expression offsets, not
// resolved coordinates.
type dragState struct {
	lastX, lastY float64 // NaN = not dragging

	initialized bool // boundary computed or explicitly supplied
	custom      bool // explicit boundary overrides the auto computation
	bounded     bool // clamping active (an uninitialized auto boundary clamps nothing)
	xMin, xMax  float64
	yMin, yMax  float64

	hasInitialPos        bool
	initialX, initialY   float64
}

// DragTarget resolves the bound child by name within this draggable's
// subtree. Returns nil when unbound or the name is missing.
func (n *Node) DragTarget() *Node {
	if n.DragNodeName == "" {
		return nil
	}
	return n.findDescendantByName(n.DragNodeName)
}

// Dragging reports whether a drag is in progress on this container.
func (n *Node) Dragging() bool {
	return !math.IsNaN(n.drag.lastX)
}

// BeginDrag records the cursor baseline for a new drag.
func (n *Node) BeginDrag(mouseX, mouseY float64) {
	n.drag.lastX = mouseX
	n.drag.lastY = mouseY
}

// EndDrag finishes the drag.
func (n *Node) EndDrag() {
	n.drag.lastX = math.NaN()
	n.drag.lastY = math.NaN()
}

// ProcessDrag applies one drag movement to the bound child's position
// offsets and reports whether the position changed. The first movement after
// boundary (re)initialization only establishes the boundary and cursor
// baseline; it applies no displacement.
func (n *Node) ProcessDrag(mouseX, mouseY float64) bool {
	if !n.Dragging() {
		return false
	}
	target := n.DragTarget()
	if target == nil {
		return false
	}

	if !n.drag.initialized {
		n.initializeBoundary(target)
		n.drag.lastX = mouseX
		n.drag.lastY = mouseY
		return false
	}

	dx := mouseX - n.drag.lastX
	dy := mouseY - n.drag.lastY

	if target.PosX == nil {
		target.PosX = AbsoluteExpr(0)
	}
	if target.PosY == nil {
		target.PosY = AbsoluteExpr(0)
	}

	newX := target.PosX.Offset + dx
	newY := target.PosY.Offset + dy
	if n.drag.bounded {
		newX = clamp(newX, n.drag.xMin, n.drag.xMax)
		newY = clamp(newY, n.drag.yMin, n.drag.yMax)
	}
	target.PosX.Offset = newX
	target.PosY.Offset = newY

	n.drag.lastX = mouseX
	n.drag.lastY = mouseY
	return true
}

// initializeBoundary computes the drag boundary from the container's and the
// bound child's resolved sizes and both anchor points:
//
//	xMin = (containerW - childW) + (anchorFromX*childW - anchorToX*containerW)
//	xMax = anchorFromX*childW - anchorToX*containerW
//
// (symmetric for y), swapping min/max when inverted. An explicitly supplied
// boundary skips the computation entirely.
func (n *Node) initializeBoundary(target *Node) {
	if n.drag.custom {
		n.drag.initialized = true
		return
	}

	containerW, containerH := n.Width, n.Height
	childW, childH := target.Width, target.Height

	fromX := target.AnchorFrom.X * childW
	fromY := target.AnchorFrom.Y * childH
	toX := target.AnchorTo.X * containerW
	toY := target.AnchorTo.Y * containerH

	xMin := (containerW - childW) + (fromX - toX)
	xMax := fromX - toX
	yMin := (containerH - childH) + (fromY - toY)
	yMax := fromY - toY

	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}

	n.drag.xMin, n.drag.xMax = xMin, xMax
	n.drag.yMin, n.drag.yMax = yMin, yMax
	n.drag.bounded = true
	n.drag.initialized = true
	debugf("drag %q: boundary X[%g, %g] Y[%g, %g]", n.Name, xMin, xMax, yMin, yMax)
}

// DragBoundary returns the active boundary as (xMin, xMax, yMin, yMax) and
// whether one is in effect.
func (n *Node) DragBoundary() (xMin, xMax, yMin, yMax float64, ok bool) {
	if !n.drag.initialized || !n.drag.bounded {
		return 0, 0, 0, 0, false
	}
	return n.drag.xMin, n.drag.xMax, n.drag.yMin, n.drag.yMax, true
}

// SetCustomBoundary installs an explicit boundary, overriding the automatic
// computation for all subsequent drags.
func (n *Node) SetCustomBoundary(xMin, xMax, yMin, yMax float64) {
	n.drag.custom = true
	n.drag.bounded = true
	n.drag.initialized = true
	n.drag.xMin, n.drag.xMax = xMin, xMax
	n.drag.yMin, n.drag.yMax = yMin, yMax
}

// ResetBoundary discards any boundary so the next drag recomputes it from
// the current layout.
func (n *Node) ResetBoundary() {
	n.drag.initialized = false
	n.drag.custom = false
	n.drag.bounded = false
}

// SetDragPosition writes the bound child's position offsets directly.
func (n *Node) SetDragPosition(x, y float64) {
	target := n.DragTarget()
	if target == nil {
		return
	}
	if target.PosX == nil {
		target.PosX = AbsoluteExpr(0)
	}
	if target.PosY == nil {
		target.PosY = AbsoluteExpr(0)
	}
	target.PosX.Offset = x
	target.PosY.Offset = y
}

// setInitialDragPosition records a declared initial position to apply once
// the subtree (and thus the bound child) exists.
func (n *Node) setInitialDragPosition(x, y float64) {
	n.drag.initialX = x
	n.drag.initialY = y
	n.drag.hasInitialPos = true
}

// applyInitialDragPosition applies a pending declared position. Called when
// the draggable is attached to the tree; a miss on the bound child leaves
// the pending position armed for a later attach.
func (n *Node) applyInitialDragPosition() {
	if !n.drag.hasInitialPos || n.DragNodeName == "" {
		return
	}
	if n.DragTarget() == nil {
		return
	}
	n.SetDragPosition(n.drag.initialX, n.drag.initialY)
	n.drag.hasInitialPos = false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
