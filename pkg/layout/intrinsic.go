package layout

import (
	"kestrel/pkg/css"
	"kestrel/pkg/text"
)

// Intrinsic widths are border-box sizes (content plus padding and
// border, margins excluded). Percentages resolve against zero here, so
// percentage-sized content contributes only its edges.

// minContentWidth is the narrowest the box can get without overflow:
// text breaks at every opportunity, so it is governed by the widest
// single word.
func (e *Engine) minContentWidth(b *Box) float64 {
	if b.Type == TextRunBox {
		return e.widestWord(b)
	}

	style := b.Style()
	if style != nil && b.Node != nil {
		if w, ok := definiteLength(style.Value("width"), -1); ok {
			return w + selfHorizontalEdges(b)
		}
	}

	// Flow, flex and grid all share the "widest child" floor: every
	// child must fit at its own minimum.
	var inner float64
	for _, child := range b.Children {
		if child.OutOfFlow() {
			continue
		}
		w := e.minContentWidth(child) + childMarginWidth(child)
		if w > inner {
			inner = w
		}
	}
	return inner + selfHorizontalEdges(b)
}

// maxContentWidth is the width the box takes with no wrapping at all.
func (e *Engine) maxContentWidth(b *Box) float64 {
	if b.Type == TextRunBox {
		return e.fullRunWidth(b)
	}

	style := b.Style()
	if style != nil && b.Node != nil {
		if w, ok := definiteLength(style.Value("width"), -1); ok {
			return w + selfHorizontalEdges(b)
		}
	}

	var inner float64
	switch {
	case b.Context == FlexContext && style != nil && isRowDirection(style.FlexDirection()):
		// A row flex line is its items laid end to end.
		gap := edgePx(style.Value("column-gap"), 0)
		first := true
		for _, child := range b.Children {
			if child.OutOfFlow() {
				continue
			}
			if !first {
				inner += gap
			}
			inner += e.maxContentWidth(child) + childMarginWidth(child)
			first = false
		}
	case b.Context == FlowContext && allInlineLevel(b.Children):
		inner = e.inlineMaxWidth(b)
	default:
		for _, child := range b.Children {
			if child.OutOfFlow() {
				continue
			}
			w := e.maxContentWidth(child) + childMarginWidth(child)
			if w > inner {
				inner = w
			}
		}
	}
	return inner + selfHorizontalEdges(b)
}

func (e *Engine) widestWord(run *Box) float64 {
	font := fontFor(run.Style())
	var widest float64
	for _, word := range text.SplitWords(run.Text) {
		if w := e.measurer.Measure(word, font).Width; w > widest {
			widest = w
		}
	}
	return widest
}

func (e *Engine) fullRunWidth(run *Box) float64 {
	font := fontFor(run.Style())
	words := text.SplitWords(run.Text)
	if len(words) == 0 {
		return 0
	}
	space := e.measurer.Measure(" ", font).Width
	var total float64
	for i, word := range words {
		if i > 0 {
			total += space
		}
		total += e.measurer.Measure(word, font).Width
	}
	return total
}

// inlineMaxWidth sums a container's inline content as one unbroken line.
func (e *Engine) inlineMaxWidth(b *Box) float64 {
	var total float64
	first := true
	var walk func(boxes []*Box)
	walk = func(boxes []*Box) {
		for _, box := range boxes {
			switch {
			case box.Type == TextRunBox:
				w := e.fullRunWidth(box)
				if w == 0 {
					continue
				}
				if !first {
					total += e.spaceWidth(box.Style())
				}
				total += w
				first = false
			case isAtomicInline(box):
				if !first {
					total += e.spaceWidth(b.Style())
				}
				total += e.maxContentWidth(box) + childMarginWidth(box)
				first = false
			default:
				walk(box.Children)
			}
		}
	}
	walk(b.Children)
	return total
}

func selfHorizontalEdges(b *Box) float64 {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == AnonymousBlockBox || b.Type == TextRunBox {
		return 0
	}
	return paddingEdges(style, 0).Horizontal() + borderEdges(style, 0).Horizontal()
}

func childMarginWidth(b *Box) float64 {
	style := b.Style()
	if style == nil || b.Node == nil || b.Type == TextRunBox || b.Type == AnonymousBlockBox {
		return 0
	}
	return edgePx(style.Value("margin-left"), 0) + edgePx(style.Value("margin-right"), 0)
}

func allInlineLevel(boxes []*Box) bool {
	for _, b := range boxes {
		if !b.IsInlineLevel() {
			return false
		}
	}
	return len(boxes) > 0
}

func isRowDirection(dir css.FlexDirection) bool {
	return dir == css.FlexRow || dir == css.FlexRowReverse
}
