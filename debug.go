package modui

import (
	"fmt"
	"os"
)

// Debug enables stderr diagnostics for skipped commands, malformed
// expressions, and unresolved name references. Off by default; intended for
// development against a live server feed.
var Debug bool

func debugf(format string, args ...any) {
	if !Debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[modui] "+format+"\n", args...)
}

// debugMaxTreeDepth guards against runaway server payloads nesting nodes
// past any sane UI depth.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	if !Debug {
		return
	}
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[modui] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
