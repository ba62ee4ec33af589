package modui

import (
	"time"

	"github.com/tanema/gween"
)

// AnimatorKind selects which node property an animator writes.
type AnimatorKind uint8

const (
	AnimatePosition AnimatorKind = iota
	AnimateSize
	AnimateAlpha
	AnimateRotate
)

func animatorKindFromString(s string) (AnimatorKind, bool) {
	switch s {
	case "position":
		return AnimatePosition, true
	case "size":
		return AnimateSize, true
	case "alpha":
		return AnimateAlpha, true
	case "rotate":
		return AnimateRotate, true
	default:
		return 0, false
	}
}

// Axis selects the x or y component for position/size animators.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Animator interpolates one node property between two values. Configuration
// is fixed at construction; timing state advances once per tick. The actual
// interpolation runs on a gween.Tween created when the delay elapses, with
// the exact end value written explicitly on completion so overshooting or
// non-terminal curves never leave a rounding artifact.
type Animator struct {
	Kind     AnimatorKind
	Axis     Axis
	Relative bool // write the expression fraction (value/100) instead of the offset
	From     float64
	To       float64
	Duration time.Duration
	Delay    time.Duration
	Loop     bool
	Curve    Curve

	created  time.Time
	tween    *gween.Tween // nil until the delay elapses
	lastTick time.Time
	finished bool

	// Rotation animators are relative to the angle present when they start.
	baseAngle     float64
	angleCaptured bool
}

// NewAnimator creates an animator. The creation timestamp anchors the delay
// phase.
func NewAnimator(kind AnimatorKind, axis Axis, relative bool, from, to float64,
	duration, delay time.Duration, loop bool, curve Curve, now time.Time) *Animator {
	return &Animator{
		Kind:     kind,
		Axis:     axis,
		Relative: relative,
		From:     from,
		To:       to,
		Duration: duration,
		Delay:    delay,
		Loop:     loop,
		Curve:    curve,
		created:  now,
	}
}

// Finished reports whether the animator reached its terminal state.
func (a *Animator) Finished() bool {
	return a.finished
}

// affectsLayout reports whether this animator's writes feed layout inputs.
func (a *Animator) affectsLayout() bool {
	return a.Kind == AnimatePosition || a.Kind == AnimateSize
}

// tickResult is the per-tick outcome consumed by the scheduler.
type tickResult uint8

const (
	tickNone     tickResult = iota // no layout impact (alpha/rotate, or still delayed)
	tickLayout                     // a layout input changed
	tickFinished                   // terminal; remove from the list
)

// tick advances the animator against its target node.
func (a *Animator) tick(n *Node, now time.Time) tickResult {
	if a.finished {
		return tickFinished
	}

	if a.tween == nil {
		if now.Sub(a.created) < a.Delay {
			return tickNone
		}
		a.start(n, now)
	}

	dt := float32(now.Sub(a.lastTick).Seconds())
	a.lastTick = now

	value, done := a.tween.Update(dt)
	if !done {
		return a.apply(n, float64(value))
	}

	// Terminal frame: write the exact end value, never the curve output.
	res := a.apply(n, a.To)
	if a.Loop {
		a.tween.Reset()
		return res
	}
	a.finished = true
	return tickFinished
}

// start transitions out of the delay phase: captures relative-rotation state
// and builds the tween. A zero duration degenerates to a single terminal
// frame on the next Update call.
func (a *Animator) start(n *Node, now time.Time) {
	if a.Kind == AnimateRotate && n.Type == NodeImage {
		a.baseAngle = n.RotateAngle
		a.angleCaptured = true
	}
	duration := float32(a.Duration.Seconds())
	a.tween = gween.New(float32(a.From), float32(a.To), duration, a.Curve.TweenFunc())
	a.lastTick = now
}

// apply writes an interpolated value into the node and classifies the write.
// Position/size animators write through the layout expressions, creating a
// zero-based one when the field was absent; alpha and rotate write node
// fields directly.
func (a *Animator) apply(n *Node, value float64) tickResult {
	switch a.Kind {
	case AnimatePosition:
		expr := a.positionExpr(n)
		a.writeExpr(expr, value)
		return tickLayout
	case AnimateSize:
		expr := a.sizeExpr(n)
		a.writeExpr(expr, value)
		return tickLayout
	case AnimateAlpha:
		n.Alpha = value
		return tickNone
	case AnimateRotate:
		if n.Type == NodeImage {
			if a.angleCaptured {
				n.RotateAngle = a.baseAngle + value
			} else {
				n.RotateAngle = value
			}
		}
		return tickNone
	}
	return tickNone
}

func (a *Animator) positionExpr(n *Node) *Expression {
	if a.Axis == AxisX {
		if n.PosX == nil {
			n.PosX = AbsoluteExpr(0)
		}
		return n.PosX
	}
	if n.PosY == nil {
		n.PosY = AbsoluteExpr(0)
	}
	return n.PosY
}

func (a *Animator) sizeExpr(n *Node) *Expression {
	if a.Axis == AxisX {
		if n.SizeX == nil {
			n.SizeX = AbsoluteExpr(0)
		}
		return n.SizeX
	}
	if n.SizeY == nil {
		n.SizeY = AbsoluteExpr(0)
	}
	return n.SizeY
}

func (a *Animator) writeExpr(expr *Expression, value float64) {
	if a.Relative {
		expr.Fraction = value / 100
	} else {
		expr.Offset = value
	}
}

// AnimationScheduler owns the per-node animator lists of one tree and
// advances them once per tick. Lists are keyed by node name; a removed
// node's whole list is discarded without side effects.
type AnimationScheduler struct {
	byNode map[string][]*Animator
	tree   *Tree
}

// NewAnimationScheduler creates a scheduler bound to a tree for target
// lookups.
func NewAnimationScheduler(tree *Tree) *AnimationScheduler {
	return &AnimationScheduler{byNode: map[string][]*Animator{}, tree: tree}
}

// Add appends animators to the named node's list. Append, never replace.
func (s *AnimationScheduler) Add(nodeName string, animators ...*Animator) {
	if len(animators) == 0 {
		return
	}
	s.byNode[nodeName] = append(s.byNode[nodeName], animators...)
}

// RemoveFor discards every animator targeting the named node.
func (s *AnimationScheduler) RemoveFor(nodeName string) {
	delete(s.byNode, nodeName)
}

// Clear discards all animators.
func (s *AnimationScheduler) Clear() {
	s.byNode = map[string][]*Animator{}
}

// Active reports whether any animators remain.
func (s *AnimationScheduler) Active() bool {
	return len(s.byNode) > 0
}

// Tick advances every animator once and reports whether any write touched a
// layout input. Finished animators are removed; a finishing position/size
// animator still counts as a layout write for its terminal frame.
func (s *AnimationScheduler) Tick(now time.Time) bool {
	needsLayout := false

	for name, list := range s.byNode {
		node := s.tree.FindByName(name)
		if node == nil {
			delete(s.byNode, name)
			continue
		}

		kept := list[:0]
		for _, anim := range list {
			switch anim.tick(node, now) {
			case tickLayout:
				needsLayout = true
				kept = append(kept, anim)
			case tickFinished:
				if anim.affectsLayout() {
					needsLayout = true
				}
			default:
				kept = append(kept, anim)
			}
		}
		for i := len(kept); i < len(list); i++ {
			list[i] = nil
		}
		if len(kept) == 0 {
			delete(s.byNode, name)
		} else {
			s.byNode[name] = kept
		}
	}

	return needsLayout
}
