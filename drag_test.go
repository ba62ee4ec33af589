package modui

import "testing"

// dragFixture builds a resolved 200x200 draggable container at (0,0) holding
// a 50x50 child with top-left anchors.
func dragFixture(t *testing.T) (container, child *Node) {
	t.Helper()
	container = NewNode("dragArea", NodeDraggable)
	container.DragNodeName = "handle"
	container.Width, container.Height = 200, 200

	child = NewNode("handle", NodePanel)
	child.Width, child.Height = 50, 50
	container.AddChild(child)
	return container, child
}

func TestDragTargetResolution(t *testing.T) {
	container, child := dragFixture(t)
	if container.DragTarget() != child {
		t.Error("DragTarget should find the bound child")
	}

	unbound := NewNode("d", NodeDraggable)
	if unbound.DragTarget() != nil {
		t.Error("unbound draggable has no target")
	}
}

func TestAutoBoundaryTopLeftAnchors(t *testing.T) {
	container, _ := dragFixture(t)
	container.BeginDrag(10, 10)
	container.ProcessDrag(10, 10) // first frame initializes the boundary

	xMin, xMax, yMin, yMax, ok := container.DragBoundary()
	if !ok {
		t.Fatal("boundary should be initialized")
	}
	// (200-50) + (0-0) = 150 and 0-0 = 0, swapped into [0, 150].
	assertFloat(t, xMin, 0, "xMin")
	assertFloat(t, xMax, 150, "xMax")
	assertFloat(t, yMin, 0, "yMin")
	assertFloat(t, yMax, 150, "yMax")
}

func TestFirstDragFrameAppliesNoDisplacement(t *testing.T) {
	container, child := dragFixture(t)
	container.BeginDrag(10, 10)

	if container.ProcessDrag(60, 60) {
		t.Error("first frame should report no movement")
	}
	if child.PosX != nil && child.PosX.Offset != 0 {
		t.Errorf("first frame wrote offset %v", child.PosX.Offset)
	}

	if !container.ProcessDrag(70, 75) {
		t.Error("second frame should move")
	}
	assertFloat(t, child.PosX.Offset, 10, "dx")
	assertFloat(t, child.PosY.Offset, 15, "dy")
}

func TestDragClampedToBoundary(t *testing.T) {
	container, child := dragFixture(t)
	container.BeginDrag(0, 0)
	container.ProcessDrag(0, 0)

	container.ProcessDrag(9999, -9999)
	assertFloat(t, child.PosX.Offset, 150, "clamped to xMax")
	assertFloat(t, child.PosY.Offset, 0, "clamped to yMin")
}

func TestDragAccumulatesAcrossFrames(t *testing.T) {
	container, child := dragFixture(t)
	container.BeginDrag(0, 0)
	container.ProcessDrag(0, 0)

	container.ProcessDrag(30, 0)
	container.ProcessDrag(50, 0)
	assertFloat(t, child.PosX.Offset, 50, "accumulated dx")
}

func TestEndDragStops(t *testing.T) {
	container, _ := dragFixture(t)
	container.BeginDrag(0, 0)
	if !container.Dragging() {
		t.Error("Dragging should be true after BeginDrag")
	}
	container.EndDrag()
	if container.Dragging() {
		t.Error("Dragging should be false after EndDrag")
	}
	if container.ProcessDrag(50, 50) {
		t.Error("ProcessDrag after EndDrag should be a no-op")
	}
}

func TestCustomBoundaryOverridesAuto(t *testing.T) {
	container, child := dragFixture(t)
	container.SetCustomBoundary(-20, 20, -10, 10)
	container.BeginDrag(0, 0)

	// Custom boundary skips the first-frame initialization pause.
	if !container.ProcessDrag(100, 100) {
		t.Error("custom boundary should move on the first frame")
	}
	assertFloat(t, child.PosX.Offset, 20, "custom xMax")
	assertFloat(t, child.PosY.Offset, 10, "custom yMax")
}

func TestResetBoundaryRecomputes(t *testing.T) {
	container, _ := dragFixture(t)
	container.SetCustomBoundary(-1, 1, -1, 1)
	container.ResetBoundary()

	container.BeginDrag(0, 0)
	container.ProcessDrag(0, 0)
	_, xMax, _, _, ok := container.DragBoundary()
	if !ok {
		t.Fatal("boundary should be reinitialized")
	}
	assertFloat(t, xMax, 150, "auto boundary after reset")
}

func TestInvertedBoundarySwaps(t *testing.T) {
	// Child larger than the container inverts min/max.
	container := NewNode("dragArea", NodeDraggable)
	container.DragNodeName = "big"
	container.Width, container.Height = 100, 100
	child := NewNode("big", NodePanel)
	child.Width, child.Height = 300, 300
	container.AddChild(child)

	container.BeginDrag(0, 0)
	container.ProcessDrag(0, 0)
	xMin, xMax, _, _, _ := container.DragBoundary()
	assertFloat(t, xMin, -200, "swapped xMin")
	assertFloat(t, xMax, 0, "swapped xMax")
}

func TestSetDragPosition(t *testing.T) {
	container, child := dragFixture(t)
	container.SetDragPosition(42, 24)
	assertFloat(t, child.PosX.Offset, 42, "x")
	assertFloat(t, child.PosY.Offset, 24, "y")
}

func TestInitialDragPositionAppliedOnAttach(t *testing.T) {
	tr := NewTree(400, 300)
	container := NewNode("dragArea", NodeDraggable)
	container.DragNodeName = "handle"
	child := NewNode("handle", NodePanel)
	container.AddChild(child)
	container.setInitialDragPosition(12, 34)

	tr.Attach(container, "/")
	assertFloat(t, child.PosX.Offset, 12, "initial x")
	assertFloat(t, child.PosY.Offset, 34, "initial y")
}
