package modui

import (
	"testing"
	"time"
)

// --- Attach / lookup ---

func TestTreeAttachToRoot(t *testing.T) {
	tr := NewTree(400, 300)
	for _, parent := range []string{"/", "&/", ""} {
		n := NewNode("n_"+parent, NodePanel)
		tr.Attach(n, parent)
		if n.Parent != tr.Root() {
			t.Errorf("parent name %q should attach to the root", parent)
		}
	}
}

func TestTreeAttachToNamedParent(t *testing.T) {
	tr := NewTree(400, 300)
	panel := NewNode("bg_panel", NodePanel)
	tr.Attach(panel, "/")

	title := NewNode("title", NodeText)
	tr.Attach(title, "bg_panel")
	if title.Parent != panel {
		t.Error("child should attach under the named parent")
	}
	if title.Path() != "/bg_panel/title" {
		t.Errorf("Path = %q", title.Path())
	}
}

func TestTreeAttachUnknownParentFallsBackToRoot(t *testing.T) {
	tr := NewTree(400, 300)
	n := NewNode("orphan", NodePanel)
	tr.Attach(n, "no_such_parent")
	if n.Parent != tr.Root() {
		t.Error("unknown parent should fall back to the root")
	}
}

func TestTreeFindByName(t *testing.T) {
	tr := NewTree(400, 300)
	n := NewNode("bg_panel", NodePanel)
	tr.Attach(n, "/")

	if tr.FindByName("bg_panel") != n {
		t.Error("name index miss")
	}
	if tr.FindByName("nope") != nil {
		t.Error("unknown name should be nil")
	}
}

func TestTreeFindByPath(t *testing.T) {
	tr := NewTree(400, 300)
	panel := NewNode("bg_panel", NodePanel)
	tr.Attach(panel, "/")
	title := NewNode("title", NodeText)
	tr.Attach(title, "bg_panel")

	if tr.FindByPath("/") != tr.Root() || tr.FindByPath("") != tr.Root() {
		t.Error("empty and / should resolve to the root")
	}
	if tr.FindByPath("/bg_panel/title") != title {
		t.Error("path index miss")
	}
	if tr.FindByPath("/no/such") != nil {
		t.Error("unknown path should be nil")
	}
}

func TestTreeAttachRegistersSubtree(t *testing.T) {
	tr := NewTree(400, 300)
	panel := NewNode("bg_panel", NodePanel)
	inner := NewNode("inner", NodeText)
	panel.AddChild(inner)

	tr.Attach(panel, "/")
	if tr.FindByName("inner") != inner {
		t.Error("pre-built children should register on attach")
	}
	if tr.FindByPath("/bg_panel/inner") != inner {
		t.Error("pre-built children should register by path")
	}
}

// --- Remove ---

func TestTreeRemoveUnregistersSubtree(t *testing.T) {
	tr := NewTree(400, 300)
	panel := NewNode("bg_panel", NodePanel)
	tr.Attach(panel, "/")
	title := NewNode("title", NodeText)
	tr.Attach(title, "bg_panel")

	tr.Remove("bg_panel")
	if tr.FindByName("bg_panel") != nil || tr.FindByName("title") != nil {
		t.Error("subtree names should unregister")
	}
	if tr.FindByPath("/bg_panel/title") != nil {
		t.Error("subtree paths should unregister")
	}
	if tr.Root().NumChildren() != 0 {
		t.Error("node should detach from its parent")
	}
}

func TestTreeRemoveCancelsAnimators(t *testing.T) {
	tr := NewTree(400, 300)
	n := NewNode("box", NodePanel)
	tr.Attach(n, "/")
	tr.Animations().Add("box", NewAnimator(AnimateAlpha, AxisX, false, 1, 0, time.Second, 0, false, CurveLinear, time.Unix(0, 0)))

	tr.Remove("box")
	if tr.Animations().Active() {
		t.Error("removal should cancel the node's animators")
	}
}

func TestTreeRemoveRootAndUnknownAreNoOps(t *testing.T) {
	tr := NewTree(400, 300)
	tr.Remove("root")
	tr.Remove("missing")
	if tr.Root() == nil {
		t.Fatal("root must survive")
	}
}

func TestTreeNameReusableAfterRemove(t *testing.T) {
	tr := NewTree(400, 300)
	tr.Attach(NewNode("bg_panel", NodePanel), "/")
	tr.Remove("bg_panel")

	replacement := NewNode("bg_panel", NodeText)
	tr.Attach(replacement, "/")
	if tr.FindByName("bg_panel") != replacement {
		t.Error("name should be reusable after removal")
	}
}

// --- Dirty tracking ---

func TestTreeResize(t *testing.T) {
	tr := NewTree(400, 300)
	tr.UpdateLayout()
	if tr.LayoutDirty() {
		t.Fatal("UpdateLayout should clear the dirty flag")
	}

	tr.Resize(400, 300)
	if tr.LayoutDirty() {
		t.Error("unchanged size should be a no-op")
	}

	tr.Resize(800, 600)
	if !tr.LayoutDirty() {
		t.Error("changed size should mark layout dirty")
	}
	assertFloat(t, tr.Root().Width, 800, "root width")
	assertFloat(t, tr.Root().Height, 600, "root height")
}

func TestTreeTickAnimationsMarksDirty(t *testing.T) {
	tr := NewTree(400, 300)
	n := NewNode("box", NodePanel)
	tr.Attach(n, "/")
	tr.UpdateLayout()

	now := time.Unix(1000, 0)
	tr.Animations().Add("box", NewAnimator(AnimatePosition, AxisX, false, 0, 100, time.Second, 0, false, CurveLinear, now))
	tr.TickAnimations(now)
	if !tr.LayoutDirty() {
		t.Error("position animation should mark layout dirty")
	}
	tr.UpdateLayout()
	if tr.LayoutDirty() {
		t.Error("UpdateLayout should clear the flag")
	}
}

func TestTreeInitialDragPositionOnAttach(t *testing.T) {
	tr := NewTree(400, 300)
	drag := NewNode("dragArea", NodeDraggable)
	drag.DragNodeName = "handle"
	handle := NewNode("handle", NodePanel)
	drag.AddChild(handle)
	drag.setInitialDragPosition(5, 7)

	tr.Attach(drag, "/")
	assertFloat(t, handle.PosX.Offset, 5, "x")
	assertFloat(t, handle.PosY.Offset, 7, "y")
}
