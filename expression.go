package modui

import (
	"fmt"
	"strconv"
	"strings"
)

// FollowType selects the reference quantity a percentage term resolves against.
type FollowType uint8

const (
	FollowNone        FollowType = iota // pure pixel value
	FollowParent                        // "%": parent size
	FollowChildren                      // "%c": sum of children sizes
	FollowMaxChildren                   // "%cm": largest child size
	FollowMaxSibling                    // "%sm": largest sibling size
	FollowXAxis                         // "%x": x-axis reference
	FollowYAxis                         // "%y": y-axis reference
)

// ExprContext supplies the reference sizes an Expression may resolve against.
// Unused references can be left zero.
type ExprContext struct {
	Parent     float64
	Children   float64
	MaxChild   float64
	MaxSibling float64
	XAxis      float64
	YAxis      float64
}

// Expression is one parsed size/position value: at most one percentage term
// plus a summed pixel offset. Follow and Fraction are set at parse time;
// Offset (and, for relative-mode animators, Fraction) is mutated in place by
// animations and drag without re-parsing.
type Expression struct {
	Follow   FollowType
	Fraction float64 // percentage as a fraction (50% = 0.5)
	Offset   float64 // pixel offset
}

// AbsoluteExpr returns an expression holding a plain pixel value.
func AbsoluteExpr(px float64) *Expression {
	return &Expression{Follow: FollowNone, Offset: px}
}

// ParseExpression parses a size/position expression string.
//
// Supported forms:
//
//	"100"           absolute pixels
//	"default"       nil (use the node type's intrinsic default)
//	"50%"           parent percentage
//	"100%c"         children total size percentage
//	"100%cm"        max child size percentage
//	"100%sm"        max sibling size percentage
//	"100%x", "100%y" axis references
//	"100% - 25 - 5" arithmetic combinations
//
// Only one percentage term is supported; if several appear the last one wins.
// A malformed term is treated as literal pixels when it parses as a number,
// otherwise skipped. A string with no valid terms parses to nil.
func ParseExpression(value string) *Expression {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "default") {
		return nil
	}

	// Normalize to '+'-separated signed terms: "100% - 25" -> "100%+-25".
	normalized := strings.ReplaceAll(value, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "+-")

	expr := &Expression{}
	valid := false
	for _, part := range strings.Split(normalized, "+") {
		if part == "" {
			continue
		}
		if idx := strings.IndexByte(part, '%'); idx >= 0 {
			pct, err := strconv.ParseFloat(part[:idx], 64)
			if err != nil {
				debugf("expression: bad percentage term %q in %q", part, value)
				continue
			}
			expr.Follow = followTypeForSuffix(part[idx+1:])
			expr.Fraction = pct / 100
			valid = true
			continue
		}
		px, err := strconv.ParseFloat(part, 64)
		if err != nil {
			debugf("expression: bad pixel term %q in %q", part, value)
			continue
		}
		expr.Offset += px
		valid = true
	}
	if !valid {
		return nil
	}
	return expr
}

// followTypeForSuffix maps the text after '%' to a FollowType.
// An empty or unrecognized suffix means parent-relative.
func followTypeForSuffix(suffix string) FollowType {
	switch suffix {
	case "c":
		return FollowChildren
	case "cm":
		return FollowMaxChildren
	case "sm":
		return FollowMaxSibling
	case "x":
		return FollowXAxis
	case "y":
		return FollowYAxis
	default:
		return FollowParent
	}
}

// Resolve computes the pixel value of the expression against the given context.
func (e *Expression) Resolve(ctx ExprContext) float64 {
	var base float64
	switch e.Follow {
	case FollowParent:
		base = ctx.Parent
	case FollowChildren:
		base = ctx.Children
	case FollowMaxChildren:
		base = ctx.MaxChild
	case FollowMaxSibling:
		base = ctx.MaxSibling
	case FollowXAxis:
		base = ctx.XAxis
	case FollowYAxis:
		base = ctx.YAxis
	}
	return base*e.Fraction + e.Offset
}

// ResolveParent resolves using only a parent reference size, the common case
// for position offsets.
func (e *Expression) ResolveParent(parentSize float64) float64 {
	return e.Resolve(ExprContext{Parent: parentSize})
}

func (e *Expression) String() string {
	if e == nil {
		return "default"
	}
	if e.Follow == FollowNone {
		return strconv.FormatFloat(e.Offset, 'g', -1, 64)
	}
	s := fmt.Sprintf("%g%%%s", e.Fraction*100, suffixForFollowType(e.Follow))
	if e.Offset != 0 {
		s += fmt.Sprintf(" + %g", e.Offset)
	}
	return s
}

func suffixForFollowType(f FollowType) string {
	switch f {
	case FollowChildren:
		return "c"
	case FollowMaxChildren:
		return "cm"
	case FollowMaxSibling:
		return "sm"
	case FollowXAxis:
		return "x"
	case FollowYAxis:
		return "y"
	default:
		return ""
	}
}
