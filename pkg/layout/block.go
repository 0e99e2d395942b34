package layout

import (
	"kestrel/pkg/css"
)

// layoutBlockLevel lays out one block-level box against its containing
// block. The containing block is the rect (cbX, cbY, cbWidth) with
// cbHeight the definite content height, or negative when indefinite.
//
// Width and horizontal edges are resolved first (they never depend on
// children), then the children are laid out by the box's formatting
// context, then the height is resolved from the children or the style.
func (e *Engine) layoutBlockLevel(b *Box, cbX, cbY, cbWidth, cbHeight float64) {
	e.calculateBlockWidth(b, cbWidth)

	d := &b.Dims
	d.Content.X = cbX + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = cbY + d.Margin.Top + d.Border.Top + d.Padding.Top

	inner := e.definiteContentHeight(b, cbHeight)
	switch b.Context {
	case FlexContext:
		e.layoutFlexChildren(b, inner)
	case GridContext:
		e.layoutGridChildren(b, inner)
	default:
		e.layoutFlowChildren(b, inner)
	}

	e.calculateBlockHeight(b, cbHeight)
	d.Resolved = true
}

// calculateBlockWidth resolves the box's horizontal edges and content
// width. width:auto fills the containing block; auto margins absorb the
// leftover space (centering when both are auto); when everything is
// over-constrained the right margin takes the (possibly negative)
// difference so the equation always balances.
func (e *Engine) calculateBlockWidth(b *Box, cbWidth float64) {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == TextRunBox {
		// Anonymous boxes have no edges of their own; text runs share
		// their parent's style but never its box properties.
		b.Dims.Content.Width = cbWidth
		return
	}

	d := &b.Dims
	d.Padding = paddingEdges(style, cbWidth)
	d.Border = borderEdges(style, cbWidth)
	d.Margin.Top = edgePx(style.Value("margin-top"), cbWidth)
	d.Margin.Bottom = edgePx(style.Value("margin-bottom"), cbWidth)

	marginLeft := style.Value("margin-left")
	marginRight := style.Value("margin-right")
	leftAuto := marginLeft.IsAuto()
	rightAuto := marginRight.IsAuto()
	ml := edgePx(marginLeft, cbWidth)
	mr := edgePx(marginRight, cbWidth)

	edges := d.Padding.Horizontal() + d.Border.Horizontal()

	width := style.Value("width")
	var w float64
	if width.IsAuto() {
		w = cbWidth - edges - ml - mr
		if w < 0 {
			w = 0
		}
		// Auto margins compute to zero when width is auto.
		leftAuto, rightAuto = false, false
	} else {
		w = width.ToPx(cbWidth)
	}
	w = clampSize(w, style.Value("min-width"), style.Value("max-width"), cbWidth)

	underflow := cbWidth - w - edges - ml - mr
	switch {
	case leftAuto && rightAuto:
		if underflow > 0 {
			ml, mr = underflow/2, underflow/2
		} else {
			ml, mr = 0, underflow
		}
	case leftAuto:
		ml = underflow
	case rightAuto:
		mr = underflow
	default:
		mr += underflow
	}

	d.Content.Width = w
	d.Margin.Left = ml
	d.Margin.Right = mr
}

// calculateBlockHeight overrides the content height computed from the
// children when the style gives a definite height, then applies the
// min/max clamp. Percentage heights against an indefinite containing
// block stay auto.
func (e *Engine) calculateBlockHeight(b *Box, cbHeight float64) {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == TextRunBox {
		return
	}

	if h, ok := definiteLength(style.Value("height"), cbHeight); ok {
		b.Dims.Content.Height = h
	}

	h := clampSize(b.Dims.Content.Height,
		style.Value("min-height"), style.Value("max-height"), cbHeight)
	b.Dims.Content.Height = h
}

// definiteContentHeight returns the box's content height when it is
// knowable before laying out children, or -1 when it depends on them.
// Children resolve percentage heights against this.
func (e *Engine) definiteContentHeight(b *Box, cbHeight float64) float64 {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == TextRunBox {
		return cbHeight
	}
	if h, ok := definiteLength(style.Value("height"), cbHeight); ok {
		return h
	}
	return -1
}

// layoutFlowChildren stacks block-level children vertically, or hands
// fully inline content to line building. Adjacent vertical margins are
// summed, not collapsed. Out-of-flow children are laid out at the
// position they would have taken in flow (their static position) and do
// not advance the stack; the positioning pass relocates them.
func (e *Engine) layoutFlowChildren(b *Box, cbHeight float64) {
	if len(b.Children) == 0 {
		b.Dims.Content.Height = 0
		return
	}

	inlineOnly := true
	for _, child := range b.Children {
		if !child.IsInlineLevel() {
			inlineOnly = false
			break
		}
	}
	if inlineOnly {
		e.layoutInlineContent(b)
		return
	}

	cursor := b.Dims.Content.Y
	for _, child := range b.Children {
		if child.OutOfFlow() {
			e.layoutOutOfFlow(child, b.Dims.Content.X, cursor, b.Dims.Content.Width, cbHeight)
			continue
		}
		e.layoutBlockLevel(child, b.Dims.Content.X, cursor, b.Dims.Content.Width, cbHeight)
		cursor += child.Dims.MarginBox().Height
	}
	b.Dims.Content.Height = cursor - b.Dims.Content.Y
}

// layoutOutOfFlow lays an absolute or fixed box out at its static
// position with shrink-to-fit sizing. An auto width never fills the
// containing block and auto margins stay zero; the positioning pass
// moves the box from here.
func (e *Engine) layoutOutOfFlow(child *Box, x, y, cw, cbHeight float64) {
	w, _ := e.shrinkToFitWidth(child, cw)
	e.layoutBoxAtOrigin(child, cw, w, cbHeight)
	mb := child.Dims.MarginBox()
	child.shift(x-mb.X, y-mb.Y)
}

// layoutBoxAtOrigin lays out a box at (0,0) with an imposed content
// width instead of the computed one. Flex and grid size their items
// first and impose the result; the caller shifts the subtree into place
// afterwards. cw is the containing width used for percentage edges.
func (e *Engine) layoutBoxAtOrigin(b *Box, cw, contentWidth, cbHeight float64) {
	style := b.Style()
	d := &b.Dims
	if style != nil && b.Node != nil {
		d.Padding = paddingEdges(style, cw)
		d.Border = borderEdges(style, cw)
		d.Margin = EdgeSizes{
			Top:    edgePx(style.Value("margin-top"), cw),
			Right:  edgePx(style.Value("margin-right"), cw),
			Bottom: edgePx(style.Value("margin-bottom"), cw),
			Left:   edgePx(style.Value("margin-left"), cw),
		}
	}
	if contentWidth < 0 {
		contentWidth = 0
	}
	d.Content.Width = contentWidth
	d.Content.X = d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = d.Margin.Top + d.Border.Top + d.Padding.Top

	inner := e.definiteContentHeight(b, cbHeight)
	switch b.Context {
	case FlexContext:
		e.layoutFlexChildren(b, inner)
	case GridContext:
		e.layoutGridChildren(b, inner)
	default:
		e.layoutFlowChildren(b, inner)
	}
	e.calculateBlockHeight(b, cbHeight)
	d.Resolved = true
}

func paddingEdges(style *css.ComputedStyle, cbWidth float64) EdgeSizes {
	return EdgeSizes{
		Top:    edgePx(style.Value("padding-top"), cbWidth),
		Right:  edgePx(style.Value("padding-right"), cbWidth),
		Bottom: edgePx(style.Value("padding-bottom"), cbWidth),
		Left:   edgePx(style.Value("padding-left"), cbWidth),
	}
}

func borderEdges(style *css.ComputedStyle, cbWidth float64) EdgeSizes {
	return EdgeSizes{
		Top:    edgePx(style.Value("border-top-width"), cbWidth),
		Right:  edgePx(style.Value("border-right-width"), cbWidth),
		Bottom: edgePx(style.Value("border-bottom-width"), cbWidth),
		Left:   edgePx(style.Value("border-left-width"), cbWidth),
	}
}

// edgePx resolves an edge value, treating auto and other keywords as 0.
func edgePx(v css.Value, cbWidth float64) float64 {
	switch v.Kind {
	case css.LengthValue:
		return v.Length
	case css.PercentValue:
		return v.Percent / 100 * cbWidth
	}
	return 0
}

// definiteLength resolves a size value to px when possible. Percentages
// need a definite containing size; keywords (auto, none) never resolve.
// Unitless numbers count as px so that "0" works where a length is due.
func definiteLength(v css.Value, containing float64) (float64, bool) {
	switch v.Kind {
	case css.LengthValue:
		return v.Length, true
	case css.NumberValue:
		return v.Number, true
	case css.PercentValue:
		if containing >= 0 {
			return v.Percent / 100 * containing, true
		}
	}
	return 0, false
}

// clampSize applies min/max constraints to a computed size, min winning
// over max, and floors the result at zero.
func clampSize(size float64, min, max css.Value, containing float64) float64 {
	if m, ok := definiteLength(max, containing); ok && size > m {
		size = m
	}
	if m, ok := definiteLength(min, containing); ok && size < m {
		size = m
	}
	if size < 0 {
		return 0
	}
	return size
}
