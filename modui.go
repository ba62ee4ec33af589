package modui

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the left/top edge are inside, right/bottom edge are outside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// NodeType distinguishes layout and rendering behavior for a Node.
// The set is closed; a node's type never changes after creation.
type NodeType uint8

const (
	NodePanel     NodeType = iota // plain container
	NodeStackPanel                // children placed sequentially along an axis
	NodeImage                     // textured or solid-color quad
	NodeText                      // wrapped, aligned text
	NodeButton                    // three-state textured button with label
	NodeScroll                    // clipped viewport over scrollable content
	NodePaperDoll                 // 3D entity preview (painted by the backend)
	NodeDraggable                 // container whose bound child can be dragged
)

// String returns the wire name of the node type.
func (t NodeType) String() string {
	switch t {
	case NodePanel:
		return "panel"
	case NodeStackPanel:
		return "stack_panel"
	case NodeImage:
		return "image"
	case NodeText:
		return "text"
	case NodeButton:
		return "button"
	case NodeScroll:
		return "scroll"
	case NodePaperDoll:
		return "paperDoll"
	case NodeDraggable:
		return "draggable"
	default:
		return "panel"
	}
}

// nodeTypeFromString maps a wire type string to a NodeType. Variant names
// (imageElongate, textLeft, buttonSlice, ...) map onto the base type; the
// variant's behavioral differences are applied at construction. Unknown
// strings fall back to panel.
func nodeTypeFromString(s string) NodeType {
	switch s {
	case "stack_panel", "stackPanel":
		return NodeStackPanel
	case "image", "imageElongate", "imageTop":
		return NodeImage
	case "text", "textLeft", "textRight":
		return NodeText
	case "button", "buttonSlice":
		return NodeButton
	case "scroll":
		return NodeScroll
	case "paperDoll", "paper_doll":
		return NodePaperDoll
	case "draggable":
		return NodeDraggable
	default:
		return NodePanel
	}
}

// Orientation selects the stacking axis of a stack panel.
type Orientation uint8

const (
	OrientVertical Orientation = iota
	OrientHorizontal
)

func orientationFromString(s string) Orientation {
	if s == "horizontal" || s == "h" {
		return OrientHorizontal
	}
	return OrientVertical
}

// TextAlign controls horizontal text alignment within a text node's width.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

func textAlignFromString(s string) TextAlign {
	switch s {
	case "left":
		return TextAlignLeft
	case "right":
		return TextAlignRight
	default:
		return TextAlignCenter
	}
}

// EventType identifies a kind of outbound surface event.
type EventType uint8

const (
	EventButtonClick  EventType = iota // a button node was activated
	EventScrollChange                  // a scroll node's offset changed from input
	EventDragMove                      // a draggable's bound node moved from input
	EventCloseRequest                  // the surface asked to be closed
)

// Event carries a discrete outbound notification from a surface. Which fields
// are meaningful depends on Type: button clicks set Path and Name, scroll
// changes set Name and Value (the new offset), drag moves set Name, X and Y.
type Event struct {
	Type  EventType
	Path  string
	Name  string
	Value float64
	X, Y  float64
}

// EventSink receives outbound events from a Surface. Implementations forward
// them to whatever transport owns the connection. A nil sink drops events.
type EventSink interface {
	EmitEvent(event Event)
}
