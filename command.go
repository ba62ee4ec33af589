package modui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Command is one incremental mutation against a tree. The wire carries either
// an object {"command": ..., "bodyName": ..., "value": ...} or a compact
// array ["SetVisible", "bg_panel", true]; both decode into this struct.
// BodyName addresses the target by its unique node name.
type Command struct {
	Command  string          `json:"command"`
	BodyName string          `json:"bodyName"`
	Value    json.RawMessage `json:"value"`
}

func (c *Command) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var parts []json.RawMessage
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return err
		}
		if len(parts) > 0 {
			var name wireString
			if err := json.Unmarshal(parts[0], &name); err != nil {
				return err
			}
			c.Command = string(name)
		}
		if len(parts) > 1 {
			var body wireString
			if err := json.Unmarshal(parts[1], &body); err != nil {
				return err
			}
			c.BodyName = string(body)
		}
		if len(parts) > 2 {
			c.Value = parts[2]
		}
		return nil
	}

	type plain Command
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Command(p)
	return nil
}

// Interpreter applies command batches to one tree. A malformed command is
// logged and skipped; a command naming an unknown node is a silent no-op, so
// the server may address nodes it already removed.
type Interpreter struct {
	tree *Tree
	sink EventSink
}

// NewInterpreter binds an interpreter to a tree. sink may be nil.
func NewInterpreter(tree *Tree, sink EventSink) *Interpreter {
	return &Interpreter{tree: tree, sink: sink}
}

// ApplyBatch applies commands in order and reports whether any structural
// change (add/remove) occurred. Layout-affecting commands mark the tree dirty
// themselves.
func (in *Interpreter) ApplyBatch(cmds []Command, now time.Time) bool {
	structural := false
	for i := range cmds {
		if in.apply(&cmds[i], now) {
			structural = true
		}
	}
	if structural {
		in.tree.MarkLayoutDirty()
	}
	return structural
}

// ApplyJSON decodes a JSON command array and applies it.
func (in *Interpreter) ApplyJSON(data []byte, now time.Time) error {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return fmt.Errorf("decode commands: %w", err)
	}
	in.ApplyBatch(cmds, now)
	return nil
}

// apply dispatches one command. Returns true for structural changes.
func (in *Interpreter) apply(cmd *Command, now time.Time) bool {
	tree := in.tree

	switch cmd.Command {
	case "SetVisible":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeBool(cmd.Value); err == nil {
				n.Visible = v
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetText":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeText {
			if s, err := decodeString(cmd.Value); err == nil {
				n.Text = s
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetTextColor":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeText {
			if c, err := decodeFloats(cmd.Value, 3); err == nil {
				n.TextColor = colorFromSlice(c)
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetFontSize":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeText {
			if v, err := decodeFloat(cmd.Value); err == nil {
				n.FontSize = v
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetTextAlignment":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeText {
			if s, err := decodeString(cmd.Value); err == nil {
				n.TextAlign = textAlignFromString(s)
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetPosition":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if x, y, err := decodeExprPair(cmd.Value); err == nil {
				n.PosX, n.PosY = x, y
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetSize":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if x, y, err := decodeExprPair(cmd.Value); err == nil {
				n.SizeX, n.SizeY = x, y
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetMaxSize":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.MaxWidth, n.MaxHeight = v[0], v[1]
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetMinSize":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.MinWidth, n.MinHeight = v[0], v[1]
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetAlpha":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeFloat(cmd.Value); err == nil {
				n.Alpha = v
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetLayer":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeInt(cmd.Value); err == nil {
				n.Layer = v
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetSprite":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if s, err := decodeString(cmd.Value); err == nil {
				n.TexturePath = s
				n.TextureEmpty = s == ""
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetSpriteColor":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if c, err := decodeFloats(cmd.Value, 3); err == nil {
				n.SpriteColor = colorFromSlice(c)
				n.HasSpriteColor = true
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetUV":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.UVX, n.UVY = v[0], v[1]
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetUVSize":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.UVWidth, n.UVHeight = v[0], v[1]
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetButtonDefault":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeButton {
			if s, err := decodeString(cmd.Value); err == nil {
				n.ButtonDefault = s
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetButtonHover":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeButton {
			if s, err := decodeString(cmd.Value); err == nil {
				n.ButtonHover = s
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetButtonPressed":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeButton {
			if s, err := decodeString(cmd.Value); err == nil {
				n.ButtonPressed = s
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetButtonLabel":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeButton {
			if s, err := decodeString(cmd.Value); err == nil {
				n.ButtonLabel = s
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetAnchorFrom":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if s, err := decodeString(cmd.Value); err == nil {
				n.AnchorFrom = AnchorFromString(s)
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetAnchorTo":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if s, err := decodeString(cmd.Value); err == nil {
				n.AnchorTo = AnchorFromString(s)
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetClip":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeBool(cmd.Value); err == nil {
				n.Clip = v
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetClipOffset":
		if n := tree.FindByName(cmd.BodyName); n != nil {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.ClipOffsetX, n.ClipOffsetY = v[0], v[1]
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetRotateAngle":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if v, err := decodeFloat(cmd.Value); err == nil {
				n.RotateAngle = v
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetRotatePivot":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeImage {
			if v, err := decodeFloats(cmd.Value, 2); err == nil {
				n.RotatePivotX, n.RotatePivotY = v[0], v[1]
			} else {
				in.reject(cmd, err)
			}
		}

	case "SetScrollContentSize":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeScroll {
			if x, y, err := decodeExprPair(cmd.Value); err == nil {
				n.ContentSizeX, n.ContentSizeY = x, y
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetScrollViewPos":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeScroll {
			if v, err := decodeFloat(cmd.Value); err == nil {
				n.SetScrollOffset(v)
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}
	case "SetScrollViewPercentValue":
		if n := tree.FindByName(cmd.BodyName); n != nil && n.Type == NodeScroll {
			if v, err := decodeInt(cmd.Value); err == nil {
				n.SetScrollPercent(v)
				tree.MarkLayoutDirty()
			} else {
				in.reject(cmd, err)
			}
		}

	case "RefreshDraggableBoundary":
		in.refreshDraggableBoundary(cmd)

	case "AddElement":
		return in.addElement(cmd)
	case "RemoveElement":
		if cmd.BodyName != "" {
			tree.Remove(cmd.BodyName)
			return true
		}

	case "AddAnimations":
		in.addAnimations(cmd, now)

	case "CloseStackUI":
		if in.sink != nil {
			in.sink.EmitEvent(Event{Type: EventCloseRequest})
		}

	default:
		debugf("command: unhandled %q", cmd.Command)
	}
	return false
}

func (in *Interpreter) reject(cmd *Command, err error) {
	debugf("command %s(%s): %v", cmd.Command, cmd.BodyName, err)
}

// refreshDraggableBoundary re-declares a draggable's position and boundary.
// The payload names the draggable itself; a present boundary object installs
// a custom boundary, an absent one resets to automatic computation.
func (in *Interpreter) refreshDraggableBoundary(cmd *Command) {
	var payload struct {
		DraggableName     string       `json:"draggableName"`
		DraggablePosition *pointDef    `json:"draggablePosition"`
		DraggableBoundary *boundaryDef `json:"draggableBoundary"`
	}
	if err := json.Unmarshal(cmd.Value, &payload); err != nil {
		in.reject(cmd, err)
		return
	}
	if payload.DraggableName == "" {
		return
	}
	n := in.tree.FindByName(payload.DraggableName)
	if n == nil || n.Type != NodeDraggable {
		return
	}
	if p := payload.DraggablePosition; p != nil {
		n.SetDragPosition(p.X, p.Y)
		in.tree.MarkLayoutDirty()
	}
	if b := payload.DraggableBoundary; b != nil {
		n.SetCustomBoundary(b.MinX, b.MaxX, b.MinY, b.MaxY)
	} else {
		n.ResetBoundary()
	}
}

// addElement builds and attaches one node from a definition payload. The
// definition may arrive as an object or as a JSON string holding one.
func (in *Interpreter) addElement(cmd *Command) bool {
	raw := bytes.TrimSpace(cmd.Value)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			in.reject(cmd, err)
			return false
		}
		raw = []byte(s)
	}

	var def Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		in.reject(cmd, err)
		return false
	}
	if def.Name == "" {
		in.reject(cmd, fmt.Errorf("definition has no name"))
		return false
	}
	in.tree.Attach(BuildNode(&def), def.ParentNode)
	return true
}

// animatorDef is the wire form of one animator configuration.
type animatorDef struct {
	Type       string  `json:"type"`
	Duration   float64 `json:"duration"` // seconds
	Delay      float64 `json:"delay"`    // seconds
	Loop       bool    `json:"loop"`
	ValueStart float64 `json:"value_start"`
	ValueEnd   float64 `json:"value_end"`
	Curve      string  `json:"curve"`
	Axis       string  `json:"axis"`
	Relative   bool    `json:"relative"`
}

// addAnimations appends animators to the named node. Individual malformed
// configs are skipped; the rest of the batch still registers. A name miss
// registers nothing.
func (in *Interpreter) addAnimations(cmd *Command, now time.Time) {
	if cmd.BodyName == "" || in.tree.FindByName(cmd.BodyName) == nil {
		return
	}
	var defs []animatorDef
	if err := json.Unmarshal(cmd.Value, &defs); err != nil {
		in.reject(cmd, err)
		return
	}

	animators := make([]*Animator, 0, len(defs))
	for i := range defs {
		anim, err := buildAnimator(&defs[i], now)
		if err != nil {
			debugf("command AddAnimations(%s): %v", cmd.BodyName, err)
			continue
		}
		animators = append(animators, anim)
	}
	if len(animators) > 0 {
		in.tree.Animations().Add(cmd.BodyName, animators...)
	}
}

func buildAnimator(def *animatorDef, now time.Time) (*Animator, error) {
	kind, ok := animatorKindFromString(def.Type)
	if !ok {
		return nil, fmt.Errorf("unknown animation type %q", def.Type)
	}
	axis := AxisX
	if def.Axis == "y" || def.Axis == "Y" {
		axis = AxisY
	}
	curveName := def.Curve
	if curveName == "" {
		curveName = "LINEAR"
	}
	return NewAnimator(kind, axis, def.Relative, def.ValueStart, def.ValueEnd,
		time.Duration(def.Duration*float64(time.Second)),
		time.Duration(def.Delay*float64(time.Second)),
		def.Loop, ParseCurve(curveName), now), nil
}

// --- Value decoding helpers ---

func decodeBool(raw json.RawMessage) (bool, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("expected bool: %w", err)
	}
	return v, nil
}

func decodeFloat(raw json.RawMessage) (float64, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("expected number: %w", err)
	}
	return v, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	v, err := decodeFloat(raw)
	return int(v), err
}

// decodeString accepts a JSON string or a bare number (the server encoder is
// lenient about quoting).
func decodeString(raw json.RawMessage) (string, error) {
	var w wireString
	if err := json.Unmarshal(raw, &w); err != nil {
		return "", err
	}
	return string(w), nil
}

func decodeFloats(raw json.RawMessage, minLen int) ([]float64, error) {
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("expected number array: %w", err)
	}
	if len(v) < minLen {
		return nil, fmt.Errorf("expected at least %d numbers, got %d", minLen, len(v))
	}
	return v, nil
}

// decodeExprPair decodes a two-entry expression array ("100%", "20", 20, or
// "default") into parsed expressions.
func decodeExprPair(raw json.RawMessage) (x, y *Expression, err error) {
	var parts []wireString
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, nil, fmt.Errorf("expected expression pair: %w", err)
	}
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("expected 2 expressions, got %d", len(parts))
	}
	return ParseExpression(string(parts[0])), ParseExpression(string(parts[1])), nil
}
