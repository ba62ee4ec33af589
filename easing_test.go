package modui

import (
	"math"
	"testing"
)

// --- Builtins ---

func TestLinearEndpoints(t *testing.T) {
	assertFloat(t, CurveLinear.Evaluate(0), 0, "linear(0)")
	assertFloat(t, CurveLinear.Evaluate(0.5), 0.5, "linear(0.5)")
	assertFloat(t, CurveLinear.Evaluate(1), 1, "linear(1)")
}

func TestEaseInOutShapes(t *testing.T) {
	if CurveEaseIn.Evaluate(0.5) >= 0.5 {
		t.Errorf("ease-in at 0.5 = %v, want < 0.5", CurveEaseIn.Evaluate(0.5))
	}
	if CurveEaseOut.Evaluate(0.5) <= 0.5 {
		t.Errorf("ease-out at 0.5 = %v, want > 0.5", CurveEaseOut.Evaluate(0.5))
	}
	if got := CurveEaseInOutSine.Evaluate(0.5); math.Abs(got-0.5) > 0.01 {
		t.Errorf("ease-in-out-sine at 0.5 = %v, want ~0.5", got)
	}
}

func TestSineGoAndBack(t *testing.T) {
	assertFloat(t, CurveSineGoAndBack.Evaluate(0), 0, "goandback(0)")
	if got := CurveSineGoAndBack.Evaluate(0.5); math.Abs(got-1) > 0.001 {
		t.Errorf("goandback(0.5) = %v, want ~1", got)
	}
	if got := CurveSineGoAndBack.Evaluate(1); math.Abs(got) > 0.001 {
		t.Errorf("goandback(1) = %v, want ~0", got)
	}
}

func TestStepCurve(t *testing.T) {
	assertFloat(t, CurveStep.Evaluate(0), 0, "step(0)")
	assertFloat(t, CurveStep.Evaluate(0.99), 0, "step(0.99)")
	assertFloat(t, CurveStep.Evaluate(1), 1, "step(1)")
}

// --- Parsing ---

func TestParseCurveNames(t *testing.T) {
	cases := []struct {
		in   string
		want Curve
	}{
		{"LINEAR", CurveLinear},
		{"linear", CurveLinear},
		{"EASE_IN", CurveEaseIn},
		{"EASE_OUT", CurveEaseOut},
		{"EASE_IN_OUT_SIN", CurveEaseInOutSine},
		{"EASE_IN_OUT_SINE", CurveEaseInOutSine},
		{"SIN_GO_AND_BACK", CurveSineGoAndBack},
		{"STEP", CurveStep},
		{"", CurveLinear},
	}
	for _, c := range cases {
		if got := ParseCurve(c.in); got.String() != c.want.String() {
			t.Errorf("ParseCurve(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParseCurveUnknownFallsBack(t *testing.T) {
	if got := ParseCurve("WOBBLE"); got.String() != "LINEAR" {
		t.Errorf("ParseCurve unknown = %s, want LINEAR", got)
	}
}

// --- Bezier ---

func TestBezierEndpoints(t *testing.T) {
	ClearCurveCache()
	c := ParseCurve("bezier[(0,0),(0.5,1),(1,1)]")
	if c.String() != "BEZIER" {
		t.Fatalf("curve = %s, want BEZIER", c)
	}
	assertFloat(t, c.Evaluate(0), 0, "bezier(0)")
	assertFloat(t, c.Evaluate(1), 1, "bezier(1)")
}

func TestBezierLinearControlPoints(t *testing.T) {
	ClearCurveCache()
	c := ParseCurve("bezier[(0,0),(1,1)]")
	for _, rate := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := c.Evaluate(rate); math.Abs(got-rate) > 0.01 {
			t.Errorf("2-point bezier(%v) = %v, want ~%v", rate, got, rate)
		}
	}
}

func TestBezierMonotonicEaseShape(t *testing.T) {
	ClearCurveCache()
	c := ParseCurve("bezier[(0,0),(0.8,0),(0.2,1),(1,1)]")
	prev := c.Evaluate(0)
	for i := 1; i <= 20; i++ {
		cur := c.Evaluate(float64(i) / 20)
		if cur < prev-0.01 {
			t.Fatalf("bezier not monotonic at %v: %v -> %v", float64(i)/20, prev, cur)
		}
		prev = cur
	}
}

func TestBezierCacheReuse(t *testing.T) {
	ClearCurveCache()
	spec := "bezier[(0,0),(0.3,0.7),(1,1)]"
	ParseCurve(spec)
	if len(bezierCache) != 1 {
		t.Fatalf("cache size = %d, want 1", len(bezierCache))
	}
	ParseCurve(spec)
	if len(bezierCache) != 1 {
		t.Errorf("cache size after reuse = %d, want 1", len(bezierCache))
	}
}

func TestBezierMalformedFallsBack(t *testing.T) {
	ClearCurveCache()
	for _, spec := range []string{"bezier", "bezier[]", "bezier[(0,0)]", "bezier[junk]"} {
		if got := ParseCurve(spec); got.String() != "LINEAR" {
			t.Errorf("ParseCurve(%q) = %s, want LINEAR", spec, got)
		}
	}
}
