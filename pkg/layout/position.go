package layout

import (
	"kestrel/pkg/css"
)

// resolvePositioning runs after flow geometry settles. Every box already
// sits at its static position, so each positioning scheme reduces to
// shifting a subtree: relative offsets against the normal position,
// absolute and fixed against an ancestor rect, sticky against the scroll
// offset. Offsets never feed back into flow.
func (e *Engine) resolvePositioning(root *Box) {
	viewport := e.Viewport()
	e.positionBox(root, viewport, viewport)
}

// positionBox positions b and recurses. absCB is the containing block
// for absolutely positioned boxes: the padding box of the nearest
// positioned ancestor, or the viewport. parentContent is the parent's
// content box, used by relative percentage offsets and the sticky clamp.
func (e *Engine) positionBox(b *Box, absCB, parentContent Rect) {
	switch b.Position() {
	case css.PositionRelative:
		dx, dy := relativeOffsets(b.Style(), parentContent)
		b.shift(dx, dy)
	case css.PositionAbsolute:
		e.placeAbsolute(b, absCB)
	case css.PositionFixed:
		// Fixed boxes track the viewport: in document coordinates their
		// containing block is the viewport shifted by the scroll offset.
		e.placeAbsolute(b, Rect{
			X:      e.scrollX,
			Y:      e.scrollY,
			Width:  e.viewportWidth,
			Height: e.viewportHeight,
		})
	case css.PositionSticky:
		e.placeSticky(b, parentContent)
	}

	childCB := absCB
	if b.Position() != css.PositionStatic {
		childCB = b.Dims.PaddingBox()
	} else if style := b.Style(); style != nil && b.Node != nil && style.HasTransform() {
		// A transformed box becomes the containing block for absolute
		// descendants even when static.
		childCB = b.Dims.PaddingBox()
	}
	for _, child := range b.Children {
		e.positionBox(child, childCB, b.Dims.Content)
	}
}

// relativeOffsets resolves the left/top (falling back to right/bottom)
// offsets of a relatively positioned box. When both sides of an axis are
// given, left and top win.
func relativeOffsets(style *css.ComputedStyle, cb Rect) (dx, dy float64) {
	if style == nil {
		return 0, 0
	}
	if l, ok := definiteLength(style.Value("left"), cb.Width); ok {
		dx = l
	} else if r, ok := definiteLength(style.Value("right"), cb.Width); ok {
		dx = -r
	}
	if t, ok := definiteLength(style.Value("top"), cb.Height); ok {
		dy = t
	} else if btm, ok := definiteLength(style.Value("bottom"), cb.Height); ok {
		dy = -btm
	}
	return dx, dy
}

// placeAbsolute moves an out-of-flow box against its containing block.
// An axis with no offsets keeps the box's static position. Offsets
// position the margin edge; opposing offsets with an auto size solve for
// the size instead.
func (e *Engine) placeAbsolute(b *Box, cb Rect) {
	style := b.Style()
	if style == nil {
		return
	}

	l, lOk := definiteLength(style.Value("left"), cb.Width)
	r, rOk := definiteLength(style.Value("right"), cb.Width)
	t, tOk := definiteLength(style.Value("top"), cb.Height)
	btm, bOk := definiteLength(style.Value("bottom"), cb.Height)

	if lOk && rOk && style.Value("width").IsAuto() {
		w := cb.Width - l - r - b.Dims.Margin.Horizontal() -
			b.Dims.Border.Horizontal() - b.Dims.Padding.Horizontal()
		if w < 0 {
			w = 0
		}
		e.layoutBoxAtOrigin(b, cb.Width, w, -1)
	}
	if tOk && bOk && style.Value("height").IsAuto() {
		h := cb.Height - t - btm - b.Dims.Margin.Vertical() -
			b.Dims.Border.Vertical() - b.Dims.Padding.Vertical()
		if h < 0 {
			h = 0
		}
		b.Dims.Content.Height = h
	}

	mb := b.Dims.MarginBox()
	var dx, dy float64
	switch {
	case lOk:
		dx = cb.X + l - mb.X
	case rOk:
		dx = cb.X + cb.Width - r - mb.Width - mb.X
	}
	switch {
	case tOk:
		dy = cb.Y + t - mb.Y
	case bOk:
		dy = cb.Y + cb.Height - btm - mb.Height - mb.Y
	}
	b.shift(dx, dy)
}

// placeSticky nudges a sticky box toward its offset once the scroll
// position passes it, clamped so the box never leaves the parent's
// content box. Only the scrolled-past direction moves; otherwise the box
// stays at its flow position.
func (e *Engine) placeSticky(b *Box, parentContent Rect) {
	style := b.Style()
	if style == nil {
		return
	}
	mb := b.Dims.MarginBox()

	if t, ok := definiteLength(style.Value("top"), parentContent.Height); ok {
		want := e.scrollY + t
		if want > mb.Y {
			limit := parentContent.Y + parentContent.Height - mb.Height
			if want > limit {
				want = limit
			}
			if want > mb.Y {
				b.shift(0, want-mb.Y)
			}
		}
	} else if btm, ok := definiteLength(style.Value("bottom"), parentContent.Height); ok {
		want := e.scrollY + e.viewportHeight - btm - mb.Height
		if want < mb.Y {
			limit := parentContent.Y
			if want < limit {
				want = limit
			}
			if want < mb.Y {
				b.shift(0, want-mb.Y)
			}
		}
	}

	if l, ok := definiteLength(style.Value("left"), parentContent.Width); ok {
		want := e.scrollX + l
		if want > mb.X {
			limit := parentContent.X + parentContent.Width - mb.Width
			if want > limit {
				want = limit
			}
			if want > mb.X {
				b.shift(want-mb.X, 0)
			}
		}
	} else if r, ok := definiteLength(style.Value("right"), parentContent.Width); ok {
		want := e.scrollX + e.viewportWidth - r - mb.Width
		if want < mb.X {
			limit := parentContent.X
			if want < limit {
				want = limit
			}
			if want < mb.X {
				b.shift(want-mb.X, 0)
			}
		}
	}
}
