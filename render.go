package modui

import (
	"image"
	"image/color"
	"math"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Renderer paints a surface's resolved tree onto an ebiten image. It holds
// the texture registry and the font face; all geometry comes from the layout
// pass, so Draw never mutates layout state.
//
// The font face is expected to render at the reference line height (10px);
// node font scale is applied through the GeoM.
type Renderer struct {
	Textures *TextureRegistry
	Face     text.Face // nil = text nodes are skipped

	// DrawDoll, when set, paints paper-doll nodes. Entity previews need the
	// host's 3D pipeline, so the core only reserves the slot.
	DrawDoll func(dst *ebiten.Image, n *Node, now time.Time)

	white *ebiten.Image
	epoch time.Time
}

// NewRenderer creates a renderer over a texture registry.
func NewRenderer(textures *TextureRegistry) *Renderer {
	return &Renderer{Textures: textures, epoch: time.Now()}
}

// Draw paints the surface. Call after Surface.Update so geometry is current.
func (r *Renderer) Draw(dst *ebiten.Image, s *Surface, now time.Time) {
	if !s.Initialized() {
		return
	}
	r.drawNode(dst, s.tree.Root(), 1, now)
}

func (r *Renderer) drawNode(dst *ebiten.Image, n *Node, parentAlpha float64, now time.Time) {
	if !n.Visible {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}

	switch n.Type {
	case NodeImage:
		r.drawImage(dst, n, alpha, now)
	case NodeText:
		r.drawText(dst, n, alpha)
	case NodeButton:
		r.drawButton(dst, n, alpha)
	case NodePaperDoll:
		if r.DrawDoll != nil {
			r.DrawDoll(dst, n, now)
		}
	}

	childDst := dst
	if n.Clip {
		clip := image.Rect(
			int(n.X+n.ClipOffsetX), int(n.Y+n.ClipOffsetY),
			int(n.X+n.ClipOffsetX+n.Width), int(n.Y+n.ClipOffsetY+n.Height),
		)
		childDst = dst.SubImage(clip.Intersect(dst.Bounds())).(*ebiten.Image)
	}

	for _, child := range paintOrdered(n.Children()) {
		r.drawNode(childDst, child, alpha, now)
	}

	if n.Type == NodeScroll {
		r.drawScrollbar(dst, n, alpha, now)
	}
}

// paintOrdered returns children in ascending layer, stable. The common case
// of already-ordered children allocates nothing.
func paintOrdered(children []*Node) []*Node {
	if layerSorted(children) {
		return children
	}
	ordered := make([]*Node, len(children))
	copy(ordered, children)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Layer < ordered[j].Layer
	})
	return ordered
}

// --- Image ---

func (r *Renderer) drawImage(dst *ebiten.Image, n *Node, alpha float64, now time.Time) {
	if n.TextureEmpty || n.Width <= 0 || n.Height <= 0 {
		return
	}

	if n.TexturePath == "" {
		if n.HasSpriteColor {
			c := n.SpriteColor
			r.fillRect(dst, n.Bounds(), Color{c.R, c.G, c.B, c.A * alpha})
		}
		return
	}

	region, ok := r.Textures.Lookup(n.TexturePath)
	src := region.SubImage()
	if ok {
		src = r.sourceRect(n, region, now)
	}

	bounds := src.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW <= 0 || srcH <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(n.Width/srcW, n.Height/srcH)
	if n.RotateAngle != 0 {
		px := n.RotatePivotX * n.Width
		py := n.RotatePivotY * n.Height
		op.GeoM.Translate(-px, -py)
		op.GeoM.Rotate(n.RotateAngle * math.Pi / 180)
		op.GeoM.Translate(px, py)
	}
	op.GeoM.Translate(n.X, n.Y)

	tint := ColorWhite
	if n.HasSpriteColor {
		tint = n.SpriteColor
	}
	applyColor(op, tint, alpha)
	dst.DrawImage(src, op)
}

// sourceRect applies UV selection and sequence frame advance within a region.
// UV coordinates are in texture pixels relative to the region origin; -1 UV
// size means the full region.
func (r *Renderer) sourceRect(n *Node, region TextureRegion, now time.Time) *ebiten.Image {
	x, y := region.X, region.Y
	w, h := region.Width, region.Height

	if n.UVWidth >= 0 && n.UVHeight >= 0 {
		x += int(n.UVX)
		y += int(n.UVY)
		w = int(n.UVWidth)
		h = int(n.UVHeight)
	}

	if seq := n.Sequence; seq != nil && seq.FrameW > 0 && seq.FrameH > 0 {
		cols := int(seq.SheetW / seq.FrameW)
		rows := int(seq.SheetH / seq.FrameH)
		total := cols * rows
		if total > 0 {
			interval := seq.Interval
			if interval <= 0 {
				interval = 0.1
			}
			frame := int(now.Sub(r.epoch).Seconds() / interval)
			if seq.Loop {
				frame %= total
			} else if frame >= total {
				frame = total - 1
			}
			x = region.X + (frame%cols)*int(seq.FrameW)
			y = region.Y + (frame/cols)*int(seq.FrameH)
			w = int(seq.FrameW)
			h = int(seq.FrameH)
		}
	}

	return region.Image.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
}

// --- Text ---

func (r *Renderer) drawText(dst *ebiten.Image, n *Node, alpha float64) {
	if r.Face == nil || n.Text == "" || n.FontSize <= 0 {
		return
	}

	lines := n.WrappedLines()
	lineAdvance := (referenceLineHeight + n.LinePadding) * n.FontSize

	for i, line := range lines {
		if line == "" {
			continue
		}
		lineW := textMeasure.LineWidth(line) * n.FontSize
		var x float64
		switch n.TextAlign {
		case TextAlignLeft:
			x = n.X
		case TextAlignRight:
			x = n.X + n.Width - lineW
		default:
			x = n.X + (n.Width-lineW)/2
		}
		y := n.Y + float64(i)*lineAdvance

		if n.TextShadow {
			r.drawTextLine(dst, line, x+n.FontSize, y+n.FontSize, n.FontSize,
				shadowColor(n.TextColor), alpha)
		}
		r.drawTextLine(dst, line, x, y, n.FontSize, n.TextColor, alpha)
	}
}

func (r *Renderer) drawTextLine(dst *ebiten.Image, line string, x, y, scale float64, c Color, alpha float64) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	a := c.A * alpha
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	text.Draw(dst, line, r.Face, op)
}

// shadowColor is the darkened drop-shadow variant of a text color.
func shadowColor(c Color) Color {
	return Color{c.R * 0.25, c.G * 0.25, c.B * 0.25, c.A}
}

// --- Button ---

func (r *Renderer) drawButton(dst *ebiten.Image, n *Node, alpha float64) {
	tex := n.ButtonDefault
	switch {
	case n.Pressed && n.ButtonPressed != "":
		tex = n.ButtonPressed
	case n.Hovered && n.ButtonHover != "":
		tex = n.ButtonHover
	}

	if tex != "" && n.Width > 0 && n.Height > 0 {
		region, _ := r.Textures.Lookup(tex)
		src := region.SubImage()
		bounds := src.Bounds()
		srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
		if srcW > 0 && srcH > 0 {
			op := &ebiten.DrawImageOptions{}
			op.Filter = ebiten.FilterNearest
			op.GeoM.Scale(n.Width/srcW, n.Height/srcH)
			op.GeoM.Translate(n.X, n.Y)
			applyColor(op, ColorWhite, alpha)
			dst.DrawImage(src, op)
		}
	}

	if n.ButtonLabel != "" && r.Face != nil && n.FontSize > 0 {
		labelW := textMeasure.LineWidth(n.ButtonLabel) * n.FontSize
		labelH := referenceLineHeight * n.FontSize
		x := n.X + (n.Width-labelW)/2
		y := n.Y + (n.Height-labelH)/2
		r.drawTextLine(dst, n.ButtonLabel, x, y, n.FontSize, n.TextColor, alpha)
	}
}

// --- Scrollbar ---

func (r *Renderer) drawScrollbar(dst *ebiten.Image, n *Node, alpha float64, now time.Time) {
	barAlpha := n.ScrollbarAlpha(now) * alpha
	if barAlpha <= 0 {
		return
	}
	track, ok := n.ScrollTrackBounds()
	if !ok {
		return
	}
	thumb, _ := n.ScrollThumbBounds()

	r.fillRect(dst, track, Color{0, 0, 0, 0.3 * barAlpha})
	thumbShade := 0.7
	if n.ThumbHovered() {
		thumbShade = 0.9
	}
	r.fillRect(dst, thumb, Color{thumbShade, thumbShade, thumbShade, 0.8 * barAlpha})
}

// --- Primitives ---

func (r *Renderer) fillRect(dst *ebiten.Image, rect Rect, c Color) {
	if rect.Width <= 0 || rect.Height <= 0 || c.A <= 0 {
		return
	}
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Translate(rect.X, rect.Y)
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	dst.DrawImage(r.white, op)
}

// applyColor sets a premultiplied tint on sprite draw options.
func applyColor(op *ebiten.DrawImageOptions, c Color, alpha float64) {
	a := c.A * alpha
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
}
