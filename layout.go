package modui

// Layout resolution: two depth-first phases over the node tree.
//
// Phase 1 resolves sizes. Each node resolves its own width/height first (its
// parent is already resolved, siblings visited earlier expose their sizes),
// then recurses, then re-resolves if its size depends on aggregate child
// statistics (stack panel auto-size, %c/%cm expressions).
//
// Phase 2 resolves positions:
//
//	x = anchorFrom.x*parentW - anchorTo.x*selfW + posX.Resolve(parentW)
//
// with two structural overrides for a node's children: stack panels place
// children sequentially along the orientation axis (their own position
// expressions are ignored), and scroll nodes position children against the
// viewport shifted by (0, -scrollOffset).

// ResolveTree recomputes resolved geometry for every node under root. The
// root's resolved size must already hold the viewport dimensions.
func ResolveTree(root *Node) {
	resolveSize(root)
	resolvePosition(root, 0, 0)
}

func resolveSize(n *Node) {
	if n.Type == NodeScroll {
		resolveScrollSize(n)
		return
	}

	parentW, parentH := parentDims(n)
	maxSibW, maxSibH := siblingMax(n)

	// Initial resolve without children stats; children are not resolved yet.
	resolveNodeSize(n, parentW, parentH, childStats{maxSibW: maxSibW, maxSibH: maxSibH})

	for _, child := range n.children {
		resolveSize(child)
	}

	if needsChildrenResolve(n) {
		stats := collectChildStats(n)
		stats.maxSibW, stats.maxSibH = maxSibW, maxSibH
		resolveNodeSize(n, parentW, parentH, stats)
	}
}

// parentDims returns the reference dimensions for a node's own size
// resolution: the parent's resolved size, or the node's own (the root is
// pre-sized to the viewport).
func parentDims(n *Node) (w, h float64) {
	if n.Parent != nil {
		return n.Parent.Width, n.Parent.Height
	}
	return n.Width, n.Height
}

// siblingMax returns the largest resolved width/height among the node's
// siblings. Siblings not yet visited this pass still hold zero (or stale)
// sizes; iteration order therefore matters and follows the parent's child
// order.
func siblingMax(n *Node) (w, h float64) {
	if n.Parent == nil {
		return 0, 0
	}
	for _, sib := range n.Parent.children {
		if sib == n {
			continue
		}
		if sib.Width > w {
			w = sib.Width
		}
		if sib.Height > h {
			h = sib.Height
		}
	}
	return w, h
}

type childStats struct {
	sumW, sumH         float64
	maxChildW, maxChildH float64
	maxSibW, maxSibH   float64
}

func collectChildStats(n *Node) childStats {
	var s childStats
	for _, child := range n.children {
		s.sumW += child.Width
		s.sumH += child.Height
		if child.Width > s.maxChildW {
			s.maxChildW = child.Width
		}
		if child.Height > s.maxChildH {
			s.maxChildH = child.Height
		}
	}
	return s
}

// needsChildrenResolve reports whether the node's size depends on aggregate
// child statistics and needs a second resolve after children are sized.
func needsChildrenResolve(n *Node) bool {
	if n.isStackPanel() && (n.SizeX == nil || n.SizeY == nil) {
		return true
	}
	if e := n.SizeX; e != nil && (e.Follow == FollowChildren || e.Follow == FollowMaxChildren) {
		return true
	}
	if e := n.SizeY; e != nil && (e.Follow == FollowChildren || e.Follow == FollowMaxChildren) {
		return true
	}
	return false
}

// resolveNodeSize resolves one node's width and height from its size
// expressions and context. Min/max clamps apply after every resolution.
func resolveNodeSize(n *Node, parentW, parentH float64, s childStats) {
	stack := n.isStackPanel()

	switch {
	case n.SizeX != nil:
		w := n.SizeX.Resolve(ExprContext{
			Parent: parentW, Children: s.sumW, MaxChild: s.maxChildW, MaxSibling: s.maxSibW,
		})
		n.Width = clampSize(w, n.MinWidth, n.MaxWidth)
	case stack:
		w := s.maxChildW
		if n.isHorizontal() {
			w = s.sumW
		}
		n.Width = clampSize(w, n.MinWidth, n.MaxWidth)
	case n.Parent != nil:
		if cw := n.ContentWidth(); cw >= 0 {
			n.Width = cw
		} else {
			n.Width = parentW
		}
	}

	switch {
	case n.SizeY != nil:
		h := n.SizeY.Resolve(ExprContext{
			Parent: parentH, Children: s.sumH, MaxChild: s.maxChildH, MaxSibling: s.maxSibH,
		})
		n.Height = clampSize(h, n.MinHeight, n.MaxHeight)
	case stack:
		h := s.sumH
		if n.isHorizontal() {
			h = s.maxChildH
		}
		n.Height = clampSize(h, n.MinHeight, n.MaxHeight)
	case n.Parent != nil:
		if ch := n.ContentHeight(); ch >= 0 {
			n.Height = ch
		} else {
			n.Height = parentH
		}
	}
}

// clampSize applies max then min, each only when non-zero.
func clampSize(v, min, max float64) float64 {
	if max > 0 && v > max {
		v = max
	}
	if min > 0 && v < min {
		v = min
	}
	return v
}

// resolveScrollSize handles the specialized scroll path: the node's own size
// is the viewport and never derives from children; children resolve against
// the viewport; content dimensions come from the content-size expressions
// (viewport size when absent); then any deferred percent offset applies and
// the offset clamps to the new range.
func resolveScrollSize(n *Node) {
	parentW, parentH := parentDims(n)
	maxSibW, maxSibH := siblingMax(n)

	resolveNodeSize(n, parentW, parentH, childStats{maxSibW: maxSibW, maxSibH: maxSibH})

	for _, child := range n.children {
		resolveSize(child)
	}

	stats := collectChildStats(n)
	viewportW, viewportH := n.Width, n.Height

	if n.ContentSizeX != nil {
		n.contentW = n.ContentSizeX.Resolve(ExprContext{
			Parent: viewportW, Children: stats.sumW, MaxChild: stats.maxChildW, MaxSibling: maxSibW,
		})
	} else {
		n.contentW = viewportW
	}
	if n.ContentSizeY != nil {
		n.contentH = n.ContentSizeY.Resolve(ExprContext{
			Parent: viewportH, Children: stats.sumH, MaxChild: stats.maxChildH, MaxSibling: maxSibH,
		})
	} else {
		n.contentH = viewportH
	}

	n.applyPendingScrollPercent()
	n.SetScrollOffset(n.scrollOffset)
}

func resolvePosition(n *Node, parentAbsX, parentAbsY float64) {
	if n.Parent != nil {
		// Scroll children use VIEWPORT dimensions for anchor math; the
		// scroll offset arrives through parentAbsY only.
		parentW := n.Parent.Width
		parentH := n.Parent.Height

		baseX := n.AnchorFrom.X*parentW - n.AnchorTo.X*n.Width
		baseY := n.AnchorFrom.Y*parentH - n.AnchorTo.Y*n.Height

		var offsetX, offsetY float64
		if n.PosX != nil {
			offsetX = n.PosX.ResolveParent(parentW)
		}
		if n.PosY != nil {
			offsetY = n.PosY.ResolveParent(parentH)
		}

		n.X = parentAbsX + baseX + offsetX
		n.Y = parentAbsY + baseY + offsetY
	}

	positionChildren(n)
}

// positionChildren dispatches to the structural override for the node's
// children, if any.
func positionChildren(n *Node) {
	switch {
	case n.Type == NodeScroll:
		contentAbsX := n.X
		contentAbsY := n.Y - n.scrollOffset
		for _, child := range n.children {
			resolvePosition(child, contentAbsX, contentAbsY)
		}
	case n.isStackPanel():
		resolveStackChildren(n)
	default:
		for _, child := range n.children {
			resolvePosition(child, n.X, n.Y)
		}
	}
}

// resolveStackChildren places children sequentially along the stack axis.
// Their own position expressions are ignored; the cross axis aligns via the
// anchor formula against the panel's cross-axis size.
func resolveStackChildren(stack *Node) {
	horizontal := stack.isHorizontal()
	cursor := 0.0

	for _, child := range stack.children {
		if horizontal {
			child.X = stack.X + cursor
			crossBase := child.AnchorFrom.Y*stack.Height - child.AnchorTo.Y*child.Height
			child.Y = stack.Y + crossBase
			cursor += child.Width
		} else {
			child.Y = stack.Y + cursor
			crossBase := child.AnchorFrom.X*stack.Width - child.AnchorTo.X*child.Width
			child.X = stack.X + crossBase
			cursor += child.Height
		}

		positionChildren(child)
	}
}
