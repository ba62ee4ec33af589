package modui

import (
	"math"
	"strings"
)

// Node is the fundamental tree element. A single flat struct is used for all
// node types to avoid interface dispatch on the layout and paint hot paths;
// type-specific field groups are simply unused for other types.
//
// Name and Type are fixed at construction. The parent back-reference is
// non-owning; a parent exclusively owns its children slice.
type Node struct {
	// Identity
	Name string
	Type NodeType
	path string // slash-joined name chain from root, maintained by the Tree

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout inputs
	SizeX, SizeY *Expression // nil = type-specific default
	PosX, PosY   *Expression // nil = no offset
	AnchorFrom   Anchor      // reference point on the parent
	AnchorTo     Anchor      // reference point on this node
	MinWidth     float64     // 0 = unconstrained
	MinHeight    float64
	MaxWidth     float64
	MaxHeight    float64
	Orientation  Orientation // stack_panel only
	Clip         bool
	ClipOffsetX  float64
	ClipOffsetY  float64

	// Visual state
	Visible bool
	Alpha   float64
	Layer   int // paint order among siblings, ties broken by insertion order

	// Text fields (NodeText)
	Text        string
	FontSize    float64
	TextShadow  bool
	TextAlign   TextAlign
	LinePadding float64 // extra pixels between lines, scaled with FontSize
	TextColor   Color

	// Image fields (NodeImage)
	TexturePath    string
	TextureEmpty   bool // textures explicitly set to "" — paint nothing
	SpriteColor    Color
	HasSpriteColor bool // solid fill / tint requested
	UVX, UVY       float64
	UVWidth        float64 // -1 = full texture
	UVHeight       float64
	RotateAngle    float64 // degrees
	RotatePivotX   float64 // normalized, default 0.5
	RotatePivotY   float64
	Sequence       *SequenceConfig

	// Button fields (NodeButton)
	ButtonDefault string
	ButtonHover   string
	ButtonPressed string
	ButtonLabel   string
	Hovered       bool
	Pressed       bool

	// Scroll fields (NodeScroll)
	ContentSizeX     *Expression // nil = content matches viewport
	ContentSizeY     *Expression
	scrollOffset     float64
	pendingPercent   int // deferred percent offset, applied once content resolves
	hasPendingScroll bool
	scrollbar        scrollbarState

	// Draggable fields (NodeDraggable)
	DragNodeName string // name of the descendant that gets dragged
	drag         dragState

	// Paper-doll fields (NodePaperDoll)
	Doll *DollConfig

	// Resolved outputs, written by the layout pass only
	X, Y          float64
	Width, Height float64
	contentW      float64 // scroll content, may exceed viewport
	contentH      float64
}

// SequenceConfig describes a sprite-sheet animation on an image node.
type SequenceConfig struct {
	FrameW, FrameH float64 // size of one frame in the sheet
	SheetW, SheetH float64 // total sheet size
	Interval       float64 // seconds per frame
	Loop           bool
}

// DollConfig describes the entity preview shown by a paper-doll node.
// Painting it is left to the render backend.
type DollConfig struct {
	EntityID int64
	Rotation string // "auto" for continuous rotation, "" for static
	Scale    float64
	InitRotY float64
}

// NewNode creates a node of the given type with protocol defaults: visible,
// opaque, top-left anchors, vertical stacking, unit font scale, full-texture
// UVs, centered rotate pivot. Scroll nodes always clip.
func NewNode(name string, typ NodeType) *Node {
	n := &Node{
		Name:         name,
		Type:         typ,
		AnchorFrom:   AnchorTopLeft,
		AnchorTo:     AnchorTopLeft,
		Visible:      true,
		Alpha:        1,
		FontSize:     1,
		TextAlign:    TextAlignCenter,
		TextColor:    ColorWhite,
		SpriteColor:  ColorWhite,
		UVWidth:      -1,
		UVHeight:     -1,
		RotatePivotX: 0.5,
		RotatePivotY: 0.5,
	}
	if typ == NodeScroll {
		n.Clip = true
	}
	n.drag.lastX = math.NaN()
	n.drag.lastY = math.NaN()
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and fixes up the child's
// parent back-reference and path. The Tree re-registers indices separately.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	child.path = n.path + "/" + child.Name
	n.children = append(n.children, child)
	debugCheckTreeDepth(child)
}

// RemoveChild detaches child from this node. No-op if child is not one of
// this node's children. Uses copy+nil to avoid retaining a dangling pointer
// in the backing array.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.Parent = nil
			return
		}
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Path returns the slash-joined name chain from the root ("" for the root
// itself, "/bg_panel/title" for descendants).
func (n *Node) Path() string {
	return n.path
}

// FindByPath walks a slash-separated name path below this node. An empty
// path or "/" returns the node itself; a miss returns nil.
func (n *Node) FindByPath(path string) *Node {
	if path == "" || path == "/" {
		return n
	}
	current := n
	for _, part := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
		if part == "" {
			continue
		}
		var found *Node
		for _, child := range current.children {
			if child.Name == part {
				found = child
				break
			}
		}
		if found == nil {
			return nil
		}
		current = found
	}
	return current
}

// findDescendantByName depth-first searches the subtree (excluding n itself).
func (n *Node) findDescendantByName(name string) *Node {
	for _, child := range n.children {
		if child.Name == name {
			return child
		}
		if found := child.findDescendantByName(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Geometry ---

// Bounds returns the resolved rectangle of the node.
func (n *Node) Bounds() Rect {
	return Rect{n.X, n.Y, n.Width, n.Height}
}

// ContainsPoint reports whether a screen-space point is inside the node's
// resolved bounds.
func (n *Node) ContainsPoint(x, y float64) bool {
	return n.Bounds().Contains(x, y)
}

// --- Type capabilities ---

// hasIntrinsicContentSize reports whether the node type contributes its own
// content size when no size expression is set. Only text measures itself;
// every other type inherits the parent size.
func (n *Node) hasIntrinsicContentSize() bool {
	return n.Type == NodeText
}

func (n *Node) isStackPanel() bool {
	return n.Type == NodeStackPanel
}

func (n *Node) isHorizontal() bool {
	return n.Orientation == OrientHorizontal
}
