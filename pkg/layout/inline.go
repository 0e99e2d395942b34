package layout

import (
	"strings"

	"kestrel/pkg/css"
	"kestrel/pkg/text"
)

// lineItem is one placeable unit on a line: a single word from a text
// run, or an atomic inline-block laid out as an opaque unit.
type lineItem struct {
	src    *Box // originating text run, nil for atomics
	box    *Box // the atomic box itself
	word   string
	width  float64
	height float64
	// spaceAfter is the width of one space in this item's font, charged
	// when another item follows on the same line.
	spaceAfter float64
}

// layoutInlineContent lays out a block container whose children are all
// inline-level. Text runs are split into words, words and atomic
// inline-blocks are packed greedily into lines, and each original run is
// replaced by per-line fragment boxes carrying exact geometry. A word
// wider than the line gets a line of its own and overflows.
func (e *Engine) layoutInlineContent(b *Box) {
	avail := b.Dims.Content.Width
	items := e.collectLineItems(b, b.Children, avail)
	if len(items) == 0 {
		b.Dims.Content.Height = 0
		b.Children = nil
		return
	}

	lines := breakLines(items, avail)

	align := css.TextAlignLeft
	if style := b.Style(); style != nil {
		align = style.TextAlign()
	}

	var placed []*Box
	y := b.Dims.Content.Y
	for _, line := range lines {
		lineWidth, lineHeight := lineExtent(line)

		x := b.Dims.Content.X
		if slack := avail - lineWidth; slack > 0 {
			switch align {
			case css.TextAlignRight:
				x += slack
			case css.TextAlignCenter:
				x += slack / 2
			}
		}

		placed = append(placed, e.placeLine(b, line, x, y, lineHeight)...)
		y += lineHeight
	}

	b.Children = placed
	b.Dims.Content.Height = y - b.Dims.Content.Y
}

// collectLineItems flattens inline content into line items. Plain inline
// spans contribute their descendants' items; their own box dissolves,
// which is fine because text runs share the span's computed style.
func (e *Engine) collectLineItems(container *Box, boxes []*Box, avail float64) []lineItem {
	var items []lineItem
	for _, box := range boxes {
		switch {
		case box.Type == TextRunBox:
			items = append(items, e.textRunItems(box)...)
		case isAtomicInline(box):
			// Atomic inlines shrink to fit and are moved onto their
			// line afterwards.
			w, _ := e.shrinkToFitWidth(box, avail)
			e.layoutBoxAtOrigin(box, avail, w, -1)
			mb := box.Dims.MarginBox()
			items = append(items, lineItem{
				box:        box,
				width:      mb.Width,
				height:     mb.Height,
				spaceAfter: e.spaceWidth(container.Style()),
			})
		default:
			items = append(items, e.collectLineItems(container, box.Children, avail)...)
		}
	}
	return items
}

func (e *Engine) textRunItems(run *Box) []lineItem {
	style := run.Style()
	font := fontFor(style)
	space := e.measurer.Measure(" ", font).Width

	var items []lineItem
	for _, word := range text.SplitWords(run.Text) {
		m := e.measurer.Measure(word, font)
		h := m.Height
		if style != nil && style.LineHeight() > h {
			h = style.LineHeight()
		}
		items = append(items, lineItem{
			src:        run,
			word:       word,
			width:      m.Width,
			height:     h,
			spaceAfter: space,
		})
	}
	return items
}

func (e *Engine) spaceWidth(style *css.ComputedStyle) float64 {
	return e.measurer.Measure(" ", fontFor(style)).Width
}

// breakLines packs items greedily: an item that would overflow the
// available width starts a new line, except as the first item of a line.
func breakLines(items []lineItem, avail float64) [][]lineItem {
	var lines [][]lineItem
	var cur []lineItem
	width := 0.0
	for _, item := range items {
		advance := item.width
		if len(cur) > 0 {
			advance += cur[len(cur)-1].spaceAfter
		}
		if len(cur) > 0 && width+advance > avail {
			lines = append(lines, cur)
			cur, width, advance = nil, 0, item.width
		}
		cur = append(cur, item)
		width += advance
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func lineExtent(line []lineItem) (width, height float64) {
	for i, item := range line {
		if i > 0 {
			width += line[i-1].spaceAfter
		}
		width += item.width
		if item.height > height {
			height = item.height
		}
	}
	return width, height
}

// placeLine positions one line's items starting at x, bottom-aligning
// every item to the line's bottom edge. Consecutive words from the same
// run merge into a single fragment box.
func (e *Engine) placeLine(parent *Box, line []lineItem, x, y, lineHeight float64) []*Box {
	var out []*Box

	var fragSrc *Box
	var fragWords []string
	var fragX, fragHeight float64

	flush := func(endX float64) {
		if fragSrc == nil {
			return
		}
		frag := &Box{
			Type:   TextRunBox,
			Node:   fragSrc.Node,
			Text:   strings.Join(fragWords, " "),
			Parent: parent,
			Dims: Dimensions{
				Content: Rect{
					X:      fragX,
					Y:      y + lineHeight - fragHeight,
					Width:  endX - fragX,
					Height: fragHeight,
				},
				Resolved: true,
			},
		}
		out = append(out, frag)
		fragSrc, fragWords, fragHeight = nil, nil, 0
	}

	for i, item := range line {
		if i > 0 {
			gap := line[i-1].spaceAfter
			// The inter-item space belongs to no fragment unless the
			// same run continues.
			if item.src == nil || item.src != fragSrc {
				flush(x)
			}
			x += gap
		}

		if item.box != nil {
			flush(x)
			mb := item.box.Dims.MarginBox()
			item.box.shift(x-mb.X, y+lineHeight-mb.Height-mb.Y)
			item.box.Parent = parent
			out = append(out, item.box)
			x += item.width
			continue
		}

		if fragSrc == nil {
			fragSrc = item.src
			fragX = x
		}
		fragWords = append(fragWords, item.word)
		if item.height > fragHeight {
			fragHeight = item.height
		}
		x += item.width
	}
	flush(x)
	return out
}

// fontFor maps the measurement-relevant style subset to a text.Font.
func fontFor(style *css.ComputedStyle) text.Font {
	if style == nil {
		return text.Font{Size: css.DefaultFontSize}
	}
	family := style.Value("font-family").Keyword
	return text.Font{
		Size:   style.FontSize,
		Bold:   style.Bold(),
		Italic: style.Italic(),
		Mono:   family == "monospace",
		Family: family,
	}
}
