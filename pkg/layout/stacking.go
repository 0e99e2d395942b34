package layout

import (
	"sort"

	"kestrel/pkg/css"
)

// StackingContext is one node of the stacking tree. Its buckets hold the
// descendants that paint inside it, partitioned the way the painter
// consumes them: negative child contexts, then in-flow content, then
// positioned z:auto/0 contexts, then positive child contexts.
type StackingContext struct {
	Root   *Box
	ZIndex int

	Negative   []*StackingContext
	InFlow     []*Box
	Positioned []*StackingContext
	Positive   []*StackingContext
}

// createsStackingContext reports whether a box starts its own context:
// positioned with an explicit z-index, fixed or sticky, opacity below
// one, or transformed.
func createsStackingContext(b *Box) bool {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == TextRunBox {
		return false
	}
	pos := style.Position()
	if pos == css.PositionFixed || pos == css.PositionSticky {
		return true
	}
	if pos != css.PositionStatic {
		if _, explicit := style.ZIndex(); explicit {
			return true
		}
	}
	if style.Opacity() < 1 {
		return true
	}
	return style.HasTransform()
}

// isPositioned reports whether the box paints in the positioned bucket.
// z-index on a non-positioned box has no effect.
func isPositioned(b *Box) bool {
	return b.Position() != css.PositionStatic
}

// BuildStackingTree derives the stacking tree for a laid-out box tree.
// The tree only orders painting; it borrows the boxes and owns nothing.
func BuildStackingTree(root *Box) *StackingContext {
	if root == nil {
		return &StackingContext{}
	}
	return buildContext(root)
}

func buildContext(root *Box) *StackingContext {
	sc := &StackingContext{Root: root}
	if style := root.Style(); style != nil && root.Node != nil {
		sc.ZIndex, _ = style.ZIndex()
	}
	collect(sc, root)

	// Stable sorts keep source order among equal z-indices.
	sort.SliceStable(sc.Negative, func(i, j int) bool {
		return sc.Negative[i].ZIndex < sc.Negative[j].ZIndex
	})
	sort.SliceStable(sc.Positive, func(i, j int) bool {
		return sc.Positive[i].ZIndex < sc.Positive[j].ZIndex
	})
	return sc
}

func collect(sc *StackingContext, box *Box) {
	for _, child := range box.Children {
		if createsStackingContext(child) || isPositioned(child) {
			nested := buildContext(child)
			switch {
			case nested.ZIndex < 0:
				sc.Negative = append(sc.Negative, nested)
			case nested.ZIndex > 0:
				sc.Positive = append(sc.Positive, nested)
			default:
				sc.Positioned = append(sc.Positioned, nested)
			}
			continue
		}
		sc.InFlow = append(sc.InFlow, child)
		collect(sc, child)
	}
}

// PaintOrder flattens the stacking tree into back-to-front paint order:
// the context's own box, negative contexts ascending, in-flow content in
// source order, positioned z:auto/0 contexts in source order, positive
// contexts ascending.
func (sc *StackingContext) PaintOrder() []*Box {
	var out []*Box
	if sc.Root != nil {
		out = append(out, sc.Root)
	}
	for _, c := range sc.Negative {
		out = append(out, c.PaintOrder()...)
	}
	out = append(out, sc.InFlow...)
	for _, c := range sc.Positioned {
		out = append(out, c.PaintOrder()...)
	}
	for _, c := range sc.Positive {
		out = append(out, c.PaintOrder()...)
	}
	return out
}
