package modui

import (
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// Curve evaluates a normalized time ratio to a normalized progress ratio.
// Builtin curves are expressed as gween ease.TweenFuncs so they can be fed
// straight into a gween.Tween; arbitrary curves are Bezier lookup tables
// wrapped in the same shape.
type Curve struct {
	name string
	fn   ease.TweenFunc
}

// Evaluate maps rate in [0,1] to progress. Progress may leave [0,1] for
// overshooting Bezier curves; callers write exact terminal values themselves.
func (c Curve) Evaluate(rate float64) float64 {
	return float64(c.fn(float32(rate), 0, 1, 1))
}

// TweenFunc returns the curve as a gween easing function.
func (c Curve) TweenFunc() ease.TweenFunc { return c.fn }

func (c Curve) String() string { return c.name }

// Builtin curves. Linear, ease-in, ease-out and sine in-out come from
// gween/ease; the go-and-back and step shapes have no gween counterpart.
var (
	CurveLinear = Curve{"LINEAR", ease.Linear}
	CurveEaseIn = Curve{"EASE_IN", ease.InQuad}
	CurveEaseOut = Curve{"EASE_OUT", ease.OutQuad}
	CurveEaseInOutSine = Curve{"EASE_IN_OUT_SIN", ease.InOutSine}
	CurveSineGoAndBack = Curve{"SIN_GO_AND_BACK", func(t, b, c, d float32) float32 {
		return b + c*float32(math.Sin(math.Pi*float64(t/d)))
	}}
	CurveStep = Curve{"STEP", func(t, b, c, d float32) float32 {
		if t < d {
			return b
		}
		return b + c
	}}
)

// bezierCache holds one LUT per distinct control-point spec string.
// All access happens on the presentation thread; no locking.
var bezierCache = map[string]Curve{}

// ParseCurve maps a curve name to a Curve. Builtin names are matched
// case-insensitively; "bezier[(x0,y0),(x1,y1),...]" builds (or reuses) a
// lookup-table curve. Anything malformed falls back to linear.
func ParseCurve(name string) Curve {
	if name == "" {
		return CurveLinear
	}
	switch strings.ToUpper(name) {
	case "LINEAR":
		return CurveLinear
	case "EASE_IN":
		return CurveEaseIn
	case "EASE_OUT":
		return CurveEaseOut
	case "EASE_IN_OUT_SIN", "EASE_IN_OUT_SINE":
		return CurveEaseInOutSine
	case "SIN_GO_AND_BACK":
		return CurveSineGoAndBack
	case "STEP":
		return CurveStep
	}
	if strings.HasPrefix(name, "bezier") {
		return parseBezier(name)
	}
	debugf("easing: unknown curve %q, falling back to LINEAR", name)
	return CurveLinear
}

func parseBezier(spec string) Curve {
	if cached, ok := bezierCache[spec]; ok {
		return cached
	}
	points := parseControlPoints(spec)
	if len(points) < 2 {
		debugf("easing: bezier needs at least 2 control points: %q", spec)
		return CurveLinear
	}
	curve := newBezierCurve(points)
	bezierCache[spec] = curve
	return curve
}

// parseControlPoints extracts (x,y) pairs from "bezier[(x0,y0),(x1,y1),...]".
func parseControlPoints(spec string) []Vec2 {
	start := strings.IndexByte(spec, '[')
	end := strings.LastIndexByte(spec, ']')
	if start < 0 || end <= start {
		return nil
	}
	inner := spec[start+1 : end]

	var points []Vec2
	for i := 0; i < len(inner); {
		pStart := strings.IndexByte(inner[i:], '(')
		if pStart < 0 {
			break
		}
		pStart += i
		pEnd := strings.IndexByte(inner[pStart:], ')')
		if pEnd < 0 {
			break
		}
		pEnd += pStart

		parts := strings.Split(inner[pStart+1:pEnd], ",")
		if len(parts) >= 2 {
			x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if errX == nil && errY == nil {
				points = append(points, Vec2{x, y})
			}
		}
		i = pEnd + 1
	}
	return points
}

// bezierLUTSize is the sample count minus one; the table holds 257 entries.
const bezierLUTSize = 256

// newBezierCurve samples an N-order Bezier through the control points into a
// lookup table using De Casteljau's algorithm. Evaluation binary-searches the
// x column and lerps the y column, bounding per-call cost to O(log n)
// regardless of curve order.
func newBezierCurve(points []Vec2) Curve {
	lutX := make([]float64, bezierLUTSize+1)
	lutY := make([]float64, bezierLUTSize+1)
	for i := 0; i <= bezierLUTSize; i++ {
		t := float64(i) / bezierLUTSize
		lutX[i] = deCasteljau(points, false, t)
		lutY[i] = deCasteljau(points, true, t)
	}

	eval := func(rate float64) float64 {
		if rate <= 0 {
			return lutY[0]
		}
		if rate >= 1 {
			return lutY[bezierLUTSize]
		}
		lo, hi := 0, bezierLUTSize
		for lo < hi-1 {
			mid := (lo + hi) / 2
			if lutX[mid] <= rate {
				lo = mid
			} else {
				hi = mid
			}
		}
		span := lutX[hi] - lutX[lo]
		if span < 1e-9 {
			return lutY[lo]
		}
		frac := (rate - lutX[lo]) / span
		return lutY[lo] + frac*(lutY[hi]-lutY[lo])
	}

	return Curve{"BEZIER", func(t, b, c, d float32) float32 {
		return b + c*float32(eval(float64(t/d)))
	}}
}

// deCasteljau evaluates one component of an N-order Bezier at parameter t.
func deCasteljau(points []Vec2, yComponent bool, t float64) float64 {
	work := make([]float64, len(points))
	for i, p := range points {
		if yComponent {
			work[i] = p.Y
		} else {
			work[i] = p.X
		}
	}
	for level := len(points) - 1; level > 0; level-- {
		for i := 0; i < level; i++ {
			work[i] = work[i]*(1-t) + work[i+1]*t
		}
	}
	return work[0]
}

// ClearCurveCache drops all cached Bezier lookup tables.
func ClearCurveCache() {
	bezierCache = map[string]Curve{}
}
