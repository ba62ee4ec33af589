package modui

import (
	"sort"
	"time"
)

// Surface is one independent UI layer: a persistent overlay or a modal
// screen. It owns the tree, the command interpreter, and the pre-init command
// buffer, and drives the per-frame update order (commands already applied,
// then animations, then layout).
//
// A surface starts empty. The first initialization payload builds the tree;
// command batches arriving before that are buffered in order and replayed
// right after the tree exists. A duplicate initialization is ignored.
type Surface struct {
	name               string
	viewportW, viewportH float64

	tree        *Tree
	interp      *Interpreter
	sink        EventSink
	initialized bool

	pending [][]Command
}

// NewSurface creates an empty surface. sink receives outbound events and may
// be nil.
func NewSurface(name string, viewportW, viewportH float64, sink EventSink) *Surface {
	return &Surface{
		name:      name,
		viewportW: viewportW,
		viewportH: viewportH,
		sink:      sink,
	}
}

// Name returns the surface identifier ("hud", "stack", ...).
func (s *Surface) Name() string {
	return s.name
}

// Initialized reports whether the tree exists.
func (s *Surface) Initialized() bool {
	return s.initialized
}

// Tree returns the surface's tree, nil before initialization.
func (s *Surface) Tree() *Tree {
	return s.tree
}

// HandleInit builds the tree from the initialization payload and replays any
// buffered command batches in arrival order. A second initialization while a
// tree exists is ignored.
func (s *Surface) HandleInit(defs []Definition, now time.Time) {
	if s.initialized {
		debugf("surface %s: duplicate init ignored", s.name)
		return
	}
	s.tree = NewTree(s.viewportW, s.viewportH)
	s.tree.InitFromDefinitions(defs)
	s.interp = NewInterpreter(s.tree, s.sink)
	s.initialized = true

	if len(s.pending) > 0 {
		debugf("surface %s: replaying %d pending batches", s.name, len(s.pending))
		for _, batch := range s.pending {
			s.interp.ApplyBatch(batch, now)
		}
		s.pending = nil
	}
}

// HandleInitJSON decodes a JSON definition array and initializes.
func (s *Surface) HandleInitJSON(data []byte, now time.Time) error {
	var defs []Definition
	if err := decodeDefinitions(data, &defs); err != nil {
		return err
	}
	s.HandleInit(defs, now)
	return nil
}

// HandleCommands applies a command batch, or buffers it when the surface is
// not initialized yet.
func (s *Surface) HandleCommands(cmds []Command, now time.Time) {
	if !s.initialized {
		debugf("surface %s: not ready, buffering %d commands", s.name, len(cmds))
		s.pending = append(s.pending, cmds)
		return
	}
	s.interp.ApplyBatch(cmds, now)
}

// Resize updates the viewport. Applies immediately to an initialized tree and
// is remembered for a tree created later.
func (s *Surface) Resize(viewportW, viewportH float64) {
	s.viewportW = viewportW
	s.viewportH = viewportH
	if s.tree != nil {
		s.tree.Resize(viewportW, viewportH)
	}
}

// Update advances one frame: animations tick, then layout re-resolves if
// anything is dirty. Call once per frame before painting.
func (s *Surface) Update(now time.Time) {
	if !s.initialized {
		return
	}
	s.tree.TickAnimations(now)
	s.tree.UpdateLayout()
}

// Close discards the tree and all buffered state. The surface returns to its
// pre-init state and may be initialized again.
func (s *Surface) Close() {
	s.tree = nil
	s.interp = nil
	s.initialized = false
	s.pending = nil
}

// EmitButtonClick forwards a button activation to the sink with the node's
// full path and name.
func (s *Surface) EmitButtonClick(n *Node) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(Event{
		Type: EventButtonClick,
		Path: n.Path(),
		Name: n.Name,
	})
}

// VisitPaintOrder walks the visible tree in paint order and calls visit for
// each node, parents before children. Siblings paint in ascending layer,
// ties in insertion order. An invisible node prunes its whole subtree.
func (s *Surface) VisitPaintOrder(visit func(*Node)) {
	if !s.initialized {
		return
	}
	visitPaintOrder(s.tree.Root(), visit)
}

func visitPaintOrder(n *Node, visit func(*Node)) {
	if !n.Visible {
		return
	}
	visit(n)

	children := n.Children()
	if len(children) == 0 {
		return
	}
	ordered := children
	if !layerSorted(children) {
		ordered = make([]*Node, len(children))
		copy(ordered, children)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Layer < ordered[j].Layer
		})
	}
	for _, child := range ordered {
		visitPaintOrder(child, visit)
	}
}

func layerSorted(nodes []*Node) bool {
	for i := 1; i < len(nodes); i++ {
		if nodes[i].Layer < nodes[i-1].Layer {
			return false
		}
	}
	return true
}
