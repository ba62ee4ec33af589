package modui

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegion describes a drawable sub-rectangle of a page image. Wire
// texture paths resolve to regions through the registry.
type TextureRegion struct {
	Image         *ebiten.Image
	X, Y          int
	Width, Height int
}

// SubImage returns the region as an ebiten sub-image ready for drawing.
func (r TextureRegion) SubImage() *ebiten.Image {
	return r.Image.SubImage(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)).(*ebiten.Image)
}

// TextureRegistry maps wire texture paths ("textures/ui/button") to regions.
// Individual images register directly; TexturePacker atlases register every
// frame under its frame name. A lookup miss returns a 1x1 magenta placeholder
// so a missing asset is visible instead of invisible.
type TextureRegistry struct {
	regions map[string]TextureRegion
}

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{regions: make(map[string]TextureRegion)}
}

// Register associates a whole image with a texture path.
func (reg *TextureRegistry) Register(path string, img *ebiten.Image) {
	b := img.Bounds()
	reg.regions[path] = TextureRegion{Image: img, X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Lookup resolves a texture path. On a miss it logs once per call and returns
// the magenta placeholder; ok is false so callers can skip UV math.
func (reg *TextureRegistry) Lookup(path string) (TextureRegion, bool) {
	if r, ok := reg.regions[path]; ok {
		return r, true
	}
	debugf("texture %q not found, using placeholder", path)
	return placeholderRegion(), false
}

// Has reports whether a path is registered.
func (reg *TextureRegistry) Has(path string) bool {
	_, ok := reg.regions[path]
	return ok
}

// placeholder singleton (no sync.Once — painting is single-threaded)
var placeholderImage *ebiten.Image

func placeholderRegion() TextureRegion {
	if placeholderImage == nil {
		placeholderImage = ebiten.NewImage(1, 1)
		placeholderImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return TextureRegion{Image: placeholderImage, Width: 1, Height: 1}
}

// LoadAtlas parses TexturePacker JSON data and registers every frame against
// the given page images. Supports both the hash format (single "frames"
// object) and the multi-page array format ("textures" array).
func (reg *TextureRegistry) LoadAtlas(jsonData []byte, pages []*ebiten.Image) error {
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return fmt.Errorf("parse atlas JSON: %w", err)
	}

	switch {
	case probe.Textures != nil:
		var texPages []atlasPage
		if err := json.Unmarshal(probe.Textures, &texPages); err != nil {
			return fmt.Errorf("parse atlas textures array: %w", err)
		}
		for i, page := range texPages {
			if i >= len(pages) {
				return fmt.Errorf("atlas references page %d but only %d images supplied", i, len(pages))
			}
			reg.registerFrames(page.Frames, pages[i])
		}
	case probe.Frames != nil:
		var frames map[string]atlasFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return fmt.Errorf("parse atlas frames: %w", err)
		}
		if len(pages) == 0 {
			return fmt.Errorf("atlas has frames but no page image supplied")
		}
		reg.registerFrames(frames, pages[0])
	default:
		return fmt.Errorf("atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return nil
}

type atlasRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type atlasFrame struct {
	Frame atlasRect `json:"frame"`
}

type atlasPage struct {
	Image  string                `json:"image"`
	Frames map[string]atlasFrame `json:"frames"`
}

func (reg *TextureRegistry) registerFrames(frames map[string]atlasFrame, page *ebiten.Image) {
	for name, f := range frames {
		reg.regions[name] = TextureRegion{
			Image: page,
			X:     f.Frame.X, Y: f.Frame.Y,
			Width: f.Frame.W, Height: f.Frame.H,
		}
	}
}
