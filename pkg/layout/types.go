// Package layout turns a styled document tree into a tree of positioned,
// sized boxes plus a stacking-context paint order. Containers are laid out
// by one of three formatting contexts (flow, flex, grid), selected once at
// box-generation time.
package layout

import (
	"kestrel/pkg/css"
)

// Rect is a rectangle in layout-root coordinates.
type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy grows the rect outward by the given edges.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds per-side thicknesses for margin, border or padding.
type EdgeSizes struct {
	Top, Right, Bottom, Left float64
}

// Horizontal is Left+Right.
func (e EdgeSizes) Horizontal() float64 { return e.Left + e.Right }

// Vertical is Top+Bottom.
func (e EdgeSizes) Vertical() float64 { return e.Top + e.Bottom }

// Dimensions is the box-model geometry of one box. Content is the content
// box; padding, border and margin expand outward from it, so the nesting
// content ⊆ padding-box ⊆ border-box ⊆ margin-box holds whenever the edge
// sizes are non-negative. Resolved distinguishes "not laid out yet" from a
// legitimate zero-sized box.
type Dimensions struct {
	Content Rect
	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes

	Resolved bool
}

// PaddingBox is the content box expanded by padding.
func (d Dimensions) PaddingBox() Rect { return d.Content.ExpandedBy(d.Padding) }

// BorderBox is the padding box expanded by borders.
func (d Dimensions) BorderBox() Rect { return d.PaddingBox().ExpandedBy(d.Border) }

// MarginBox is the border box expanded by margins.
func (d Dimensions) MarginBox() Rect { return d.BorderBox().ExpandedBy(d.Margin) }

// BoxType tags the box variants in the layout tree.
type BoxType int

const (
	BlockBox BoxType = iota
	InlineBox
	AnonymousBlockBox
	FlexContainerBox
	FlexItemBox
	GridContainerBox
	GridItemBox
	TextRunBox
)

func (t BoxType) String() string {
	switch t {
	case BlockBox:
		return "block"
	case InlineBox:
		return "inline"
	case AnonymousBlockBox:
		return "anonymous"
	case FlexContainerBox:
		return "flex"
	case FlexItemBox:
		return "flex-item"
	case GridContainerBox:
		return "grid"
	case GridItemBox:
		return "grid-item"
	case TextRunBox:
		return "text"
	}
	return "unknown"
}

// FormattingContext selects which layout algorithm owns a container's
// children. It is fixed at box-generation time from display.
type FormattingContext int

const (
	FlowContext FormattingContext = iota
	FlexContext
	GridContext
)

// Box is one node of the layout tree. Node is a weak back-reference to the
// originating styled node; anonymous boxes have none. Children are owned.
// Dims is mutated in place by the layout passes.
type Box struct {
	Type    BoxType
	Context FormattingContext

	Node *css.StyledNode
	Text string // TextRunBox only

	Children []*Box
	Parent   *Box

	Dims Dimensions
}

// Style returns the computed style driving this box. Anonymous boxes and
// text runs fall back to the nearest styled ancestor so font and text
// properties are always reachable.
func (b *Box) Style() *css.ComputedStyle {
	for box := b; box != nil; box = box.Parent {
		if box.Node != nil && box.Node.Style != nil {
			return box.Node.Style
		}
	}
	return nil
}

// IsInlineLevel reports whether the box participates in inline layout.
func (b *Box) IsInlineLevel() bool {
	if b.Type == TextRunBox {
		return true
	}
	return b.Type == InlineBox
}

// Position returns the box's position property; text runs and anonymous
// boxes are always static.
func (b *Box) Position() css.PositionType {
	if b.Node == nil || b.Node.Style == nil || b.Type == TextRunBox {
		return css.PositionStatic
	}
	return b.Node.Style.Position()
}

// OutOfFlow reports whether the box is removed from normal flow.
func (b *Box) OutOfFlow() bool {
	pos := b.Position()
	return pos == css.PositionAbsolute || pos == css.PositionFixed
}

// addChild appends a child and wires its parent pointer.
func (b *Box) addChild(child *Box) {
	child.Parent = b
	b.Children = append(b.Children, child)
}

// shift moves the box and its whole subtree by (dx, dy). Positioning uses
// it to relocate out-of-flow boxes after flow geometry settles.
func (b *Box) shift(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.Dims.Content.X += dx
	b.Dims.Content.Y += dy
	for _, child := range b.Children {
		child.shift(dx, dy)
	}
}
