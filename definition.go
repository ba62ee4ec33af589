package modui

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Definition is one inbound node-definition record. Field names follow the
// wire protocol; every layout/visual field is optional and falls back to the
// node type's defaults.
type Definition struct {
	Type       string       `json:"type"`
	Name       string       `json:"name"`
	ParentNode string       `json:"parentNode"`
	Size       []wireString `json:"size"`
	Position   []wireString `json:"position"`
	AnchorFrom string       `json:"anchorFrom"`
	AnchorTo   string       `json:"anchorTo"`
	Visible    *bool        `json:"visible"`
	Alpha      *float64     `json:"alpha"`
	Layer      *int         `json:"layer"`
	MaxSize    []float64    `json:"maxSize"`
	MinSize    []float64    `json:"minSize"`
	Orientation string      `json:"orientation"`
	Clip       *bool        `json:"clip"`
	ClipOffset []float64    `json:"clipOffset"`

	// Text
	Text          *string   `json:"text"`
	FontSize      *float64  `json:"fontSize"`
	TextShadow    *bool     `json:"textShadow"`
	TextAlignment string    `json:"textAlignment"`
	LinePadding   *float64  `json:"linePadding"`
	LinePaddingWire *float64 `json:"line_padding"`
	Color         []float64 `json:"color"`

	// Image
	Textures    *string         `json:"textures"`
	UV          []float64       `json:"uv"`
	UVSize      []float64       `json:"uvSize"`
	RotateAngle *float64        `json:"rotateAngle"`
	RotatePivot []float64       `json:"rotatePivot"`
	Sequence    *sequenceDef    `json:"sequence"`

	// Button
	Default     *string `json:"default"`
	Hover       *string `json:"hover"`
	PressedTex  *string `json:"pressed"`
	ButtonLabel *string `json:"button_label"`

	// Scroll
	ContentSize    []wireString `json:"contentSize"`
	ViewPos        *float64     `json:"viewPos"`
	ViewPosPercent *int         `json:"viewPosPercent"`

	// Draggable
	DraggableNode     string       `json:"draggableNode"`
	DraggableBoundary *boundaryDef `json:"draggableBoundary"`
	DraggablePosition *pointDef    `json:"draggablePosition"`

	// Paper doll
	Doll *dollDef `json:"doll"`
}

type sequenceDef struct {
	UVSize   []float64 `json:"uvSize"`
	UVLength []float64 `json:"uvLength"`
	Interval *float64  `json:"interval"`
	Loop     *bool     `json:"loop"`
}

type boundaryDef struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

type pointDef struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dollDef struct {
	EntityID wireString `json:"entity_id"`
	Rotation string     `json:"rotation"`
	Scale    *float64   `json:"scale"`
	InitRotY *float64   `json:"init_rot_y"`
}

// wireString accepts either a JSON string or a bare number, mirroring the
// lenient server encoder (sizes arrive as "100%" or 100 interchangeably).
type wireString string

func (w *wireString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = wireString(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*w = wireString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}

// BuildNode constructs a Node from a definition, applying type defaults and
// every present field. The parent linkage is the Tree's job (Attach).
func BuildNode(def *Definition) *Node {
	typ := nodeTypeFromString(def.Type)
	n := NewNode(def.Name, typ)

	// Variant-derived defaults.
	switch def.Type {
	case "textLeft":
		n.TextAlign = TextAlignLeft
	case "textRight":
		n.TextAlign = TextAlignRight
	}

	if len(def.Size) >= 2 {
		n.SizeX = ParseExpression(string(def.Size[0]))
		n.SizeY = ParseExpression(string(def.Size[1]))
	}
	if len(def.Position) >= 2 {
		n.PosX = ParseExpression(string(def.Position[0]))
		n.PosY = ParseExpression(string(def.Position[1]))
	}
	if def.AnchorFrom != "" {
		n.AnchorFrom = AnchorFromString(def.AnchorFrom)
	}
	if def.AnchorTo != "" {
		n.AnchorTo = AnchorFromString(def.AnchorTo)
	}
	if def.Visible != nil {
		n.Visible = *def.Visible
	}
	if def.Alpha != nil {
		n.Alpha = *def.Alpha
	}
	if def.Layer != nil {
		n.Layer = *def.Layer
	}
	if len(def.MaxSize) >= 2 {
		n.MaxWidth, n.MaxHeight = def.MaxSize[0], def.MaxSize[1]
	}
	if len(def.MinSize) >= 2 {
		n.MinWidth, n.MinHeight = def.MinSize[0], def.MinSize[1]
	}
	if def.Orientation != "" {
		n.Orientation = orientationFromString(def.Orientation)
	}
	if def.Clip != nil {
		n.Clip = *def.Clip
	}
	if len(def.ClipOffset) >= 2 {
		n.ClipOffsetX, n.ClipOffsetY = def.ClipOffset[0], def.ClipOffset[1]
	}
	if typ == NodeScroll {
		n.Clip = true // scroll always clips
	}

	switch typ {
	case NodeText:
		applyTextDef(n, def)
	case NodeImage:
		applyImageDef(n, def)
	case NodeButton:
		applyButtonDef(n, def)
	case NodeScroll:
		applyScrollDef(n, def)
	case NodeDraggable:
		applyDraggableDef(n, def)
	case NodePaperDoll:
		applyDollDef(n, def)
	}

	return n
}

func applyTextDef(n *Node, def *Definition) {
	if def.Text != nil {
		n.Text = *def.Text
	}
	if def.FontSize != nil {
		n.FontSize = *def.FontSize
	}
	if def.TextShadow != nil {
		n.TextShadow = *def.TextShadow
	}
	if def.TextAlignment != "" {
		n.TextAlign = textAlignFromString(def.TextAlignment)
	}
	if def.LinePadding != nil {
		n.LinePadding = *def.LinePadding
	} else if def.LinePaddingWire != nil {
		n.LinePadding = *def.LinePaddingWire
	}
	if len(def.Color) >= 3 {
		n.TextColor = colorFromSlice(def.Color)
	}
}

func applyImageDef(n *Node, def *Definition) {
	if def.Textures != nil {
		n.TexturePath = *def.Textures
		n.TextureEmpty = *def.Textures == ""
	}
	if len(def.Color) >= 3 {
		n.SpriteColor = colorFromSlice(def.Color)
		n.HasSpriteColor = true
	}
	if len(def.UV) >= 2 {
		n.UVX, n.UVY = def.UV[0], def.UV[1]
	}
	if len(def.UVSize) >= 2 {
		n.UVWidth, n.UVHeight = def.UVSize[0], def.UVSize[1]
	}
	if def.RotateAngle != nil {
		n.RotateAngle = *def.RotateAngle
	}
	if len(def.RotatePivot) >= 2 {
		n.RotatePivotX, n.RotatePivotY = def.RotatePivot[0], def.RotatePivot[1]
	}
	if seq := def.Sequence; seq != nil && len(seq.UVSize) >= 2 && len(seq.UVLength) >= 2 {
		cfg := &SequenceConfig{
			FrameW:   seq.UVSize[0],
			FrameH:   seq.UVSize[1],
			SheetW:   seq.UVLength[0],
			SheetH:   seq.UVLength[1],
			Interval: 0.1,
			Loop:     true,
		}
		if seq.Interval != nil {
			cfg.Interval = *seq.Interval
		}
		if seq.Loop != nil {
			cfg.Loop = *seq.Loop
		}
		n.Sequence = cfg
	}
}

func applyButtonDef(n *Node, def *Definition) {
	if def.Default != nil {
		n.ButtonDefault = *def.Default
	}
	if def.Hover != nil {
		n.ButtonHover = *def.Hover
	}
	if def.PressedTex != nil {
		n.ButtonPressed = *def.PressedTex
	}
	if def.ButtonLabel != nil {
		n.ButtonLabel = *def.ButtonLabel
	}
}

func applyScrollDef(n *Node, def *Definition) {
	if len(def.ContentSize) >= 2 {
		n.ContentSizeX = ParseExpression(string(def.ContentSize[0]))
		n.ContentSizeY = ParseExpression(string(def.ContentSize[1]))
	}
	if def.ViewPos != nil {
		n.scrollOffset = *def.ViewPos
	} else if def.ViewPosPercent != nil {
		n.setScrollPercentDeferred(*def.ViewPosPercent)
	}
}

func applyDraggableDef(n *Node, def *Definition) {
	n.DragNodeName = def.DraggableNode
	if b := def.DraggableBoundary; b != nil {
		n.SetCustomBoundary(b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	if p := def.DraggablePosition; p != nil {
		n.setInitialDragPosition(p.X, p.Y)
	}
}

func applyDollDef(n *Node, def *Definition) {
	if def.Doll == nil {
		return
	}
	cfg := &DollConfig{EntityID: -1, Scale: 1, Rotation: def.Doll.Rotation}
	if id, err := strconv.ParseInt(string(def.Doll.EntityID), 10, 64); err == nil {
		cfg.EntityID = id
	} else if def.Doll.EntityID != "" {
		debugf("paperDoll %q: invalid entity_id %q", n.Name, def.Doll.EntityID)
	}
	if def.Doll.Scale != nil {
		cfg.Scale = *def.Doll.Scale
	}
	if def.Doll.InitRotY != nil {
		cfg.InitRotY = *def.Doll.InitRotY
	}
	n.Doll = cfg
}

func colorFromSlice(c []float64) Color {
	col := Color{R: c[0], G: c[1], B: c[2], A: 1}
	if len(c) >= 4 {
		col.A = c[3]
	}
	return col
}

// InitFromDefinitions builds the tree from an ordered array of definition
// records. A malformed entry is logged and skipped; the rest of the payload
// still applies.
func (t *Tree) InitFromDefinitions(defs []Definition) {
	for i := range defs {
		def := &defs[i]
		if def.Name == "" {
			debugf("tree: definition %d has no name, skipping", i)
			continue
		}
		t.Attach(BuildNode(def), def.ParentNode)
	}
	t.MarkLayoutDirty()
}

// InitFromJSON decodes a JSON array of definitions and builds the tree.
func (t *Tree) InitFromJSON(data []byte) error {
	var defs []Definition
	if err := decodeDefinitions(data, &defs); err != nil {
		return err
	}
	t.InitFromDefinitions(defs)
	return nil
}

func decodeDefinitions(data []byte, out *[]Definition) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode definitions: %w", err)
	}
	return nil
}
