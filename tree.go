package modui

import "time"

// Tree owns the root node of one UI surface plus name- and path-keyed
// lookup indices. One Tree exists per independent surface (the HUD overlay,
// each modal screen); it is created from the first initialization payload
// and discarded wholesale on close.
type Tree struct {
	root *Node

	// byName backs command dispatch and parent resolution; byPath is derived
	// and serves diagnostic/path lookups.
	byName map[string]*Node
	byPath map[string]*Node

	layoutDirty bool
	animations  *AnimationScheduler
}

// NewTree creates a tree whose root panel is pre-sized to the viewport.
func NewTree(viewportW, viewportH float64) *Tree {
	root := NewNode("root", NodePanel)
	root.Width = viewportW
	root.Height = viewportH
	t := &Tree{
		root:        root,
		byName:      map[string]*Node{},
		byPath:      map[string]*Node{"/": root},
		layoutDirty: true,
	}
	t.animations = NewAnimationScheduler(t)
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Animations returns the tree's animation scheduler.
func (t *Tree) Animations() *AnimationScheduler {
	return t.animations
}

// FindByName looks a node up by its unique name. Nil on miss.
func (t *Tree) FindByName(name string) *Node {
	return t.byName[name]
}

// FindByPath looks a node up by its slash-joined path ("/bg_panel/title").
// Empty and "/" resolve to the root. Falls back to a tree walk when the
// index misses.
func (t *Tree) FindByPath(path string) *Node {
	if path == "" || path == "/" {
		return t.root
	}
	if n, ok := t.byPath[path]; ok {
		return n
	}
	return t.root.FindByPath(path)
}

// Attach inserts node under the parent named parentName. The literal values
// "/" and "&/" mean the root; any other value must already exist in the name
// index or the node attaches to the root instead. The node registers in both
// indices, and a draggable's pending declared position applies.
func (t *Tree) Attach(node *Node, parentName string) {
	parent := t.root
	if parentName != "/" && parentName != "&/" && parentName != "" {
		if p := t.byName[parentName]; p != nil {
			parent = p
		} else {
			debugf("tree: parent %q not found, attaching %q to root", parentName, node.Name)
		}
	}
	parent.AddChild(node)
	t.register(node)

	if node.Type == NodeDraggable {
		node.applyInitialDragPosition()
	}
	t.MarkLayoutDirty()
}

// register indexes a node and its whole subtree (a pre-built subtree may be
// attached in one call).
func (t *Tree) register(node *Node) {
	if node.Name != "" {
		t.byName[node.Name] = node
	}
	if node.path != "" {
		t.byPath[node.path] = node
	}
	for _, child := range node.children {
		t.register(child)
	}
}

// Remove deletes the named node and its entire subtree from the tree and
// both indices, and cancels every animator targeting a removed name.
// Removing the root or an unknown name is a no-op.
func (t *Tree) Remove(name string) {
	node := t.byName[name]
	if node == nil || node == t.root {
		return
	}
	t.unregister(node)
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
	t.MarkLayoutDirty()
}

func (t *Tree) unregister(node *Node) {
	if node.Name != "" {
		delete(t.byName, node.Name)
		t.animations.RemoveFor(node.Name)
	}
	if node.path != "" {
		delete(t.byPath, node.path)
	}
	for _, child := range node.children {
		t.unregister(child)
	}
}

// MarkLayoutDirty requests a full layout resolve before the next paint.
func (t *Tree) MarkLayoutDirty() {
	t.layoutDirty = true
}

// LayoutDirty reports whether geometry must re-resolve before painting.
func (t *Tree) LayoutDirty() bool {
	return t.layoutDirty
}

// Resize updates the viewport. A changed size re-sizes the root and marks
// layout dirty; an unchanged size is a no-op.
func (t *Tree) Resize(viewportW, viewportH float64) {
	if viewportW == t.root.Width && viewportH == t.root.Height {
		return
	}
	t.root.Width = viewportW
	t.root.Height = viewportH
	t.layoutDirty = true
}

// TickAnimations advances all animators once. Layout-affecting writes mark
// the tree dirty.
func (t *Tree) TickAnimations(now time.Time) {
	if t.animations.Active() && t.animations.Tick(now) {
		t.MarkLayoutDirty()
	}
}

// UpdateLayout re-resolves geometry if anything is dirty. Call after
// commands and animation ticks, before reading geometry for painting.
func (t *Tree) UpdateLayout() {
	if !t.layoutDirty {
		return
	}
	ResolveTree(t.root)
	t.layoutDirty = false
}
