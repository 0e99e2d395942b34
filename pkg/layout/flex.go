package layout

import (
	"math"
	"sort"

	"kestrel/pkg/css"
)

// flexItem carries one item's state through the flex algorithm. All main
// sizes (base, size, min, max) are content sizes; outer sizes add the
// item's padding, border and margin on the main axis.
type flexItem struct {
	box *Box

	grow   float64
	shrink float64
	order  int

	base float64
	min  float64
	max  float64 // math.Inf(1) when unconstrained

	size   float64 // resolved main content size
	frozen bool

	edgesMain   float64 // padding+border on the main axis
	marginMain  float64
	marginCross float64

	cross float64 // outer cross size after geometry layout
}

func (it *flexItem) outer() float64 { return it.size + it.edgesMain + it.marginMain }

// layoutFlexChildren runs the flex algorithm over a container's items:
// base sizes from flex-basis, optional wrapping into lines, iterative
// grow/shrink distribution with min/max clamping, then main- and
// cross-axis alignment. cbHeight is the container's definite content
// height, negative when indefinite.
func (e *Engine) layoutFlexChildren(b *Box, cbHeight float64) {
	style := b.Style()
	if style == nil {
		b.Dims.Content.Height = 0
		return
	}

	dir := style.FlexDirection()
	row := isRowDirection(dir)
	cw := b.Dims.Content.Width

	var mainGap, crossGap float64
	if row {
		mainGap = edgePx(style.Value("column-gap"), cw)
		crossGap = edgePx(style.Value("row-gap"), cw)
	} else {
		mainGap = edgePx(style.Value("row-gap"), cw)
		crossGap = edgePx(style.Value("column-gap"), cw)
	}

	// Main-axis available space. A column container with auto height has
	// an indefinite main size: items take their base sizes unflexed.
	mainAvail := cw
	if !row {
		mainAvail = cbHeight
	}

	var items []*flexItem
	for _, child := range b.Children {
		if child.OutOfFlow() {
			// Static position: the container's content origin.
			e.layoutOutOfFlow(child, b.Dims.Content.X, b.Dims.Content.Y, cw, cbHeight)
			continue
		}
		items = append(items, e.prepareFlexItem(child, row, cw, mainAvail))
	}
	if len(items) == 0 {
		b.Dims.Content.Height = 0
		return
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })

	lines := e.collectFlexLines(items, style.FlexWrap(), mainAvail, mainGap)
	if style.FlexWrap() == css.WrapReverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}

	for _, line := range lines {
		e.resolveFlexibleLengths(line, mainAvail, mainGap)
	}
	e.log.Debug("flex container resolved", "items", len(items), "lines", len(lines))

	// Each item is laid out at the origin with its flexed main size, then
	// shifted onto its line.
	alignDefault := style.AlignItems()
	for _, line := range lines {
		for _, it := range line {
			stretch := itemAlignment(it, alignDefault) == css.AlignStretch
			e.layoutFlexItemGeometry(it, row, cw, stretch)
		}
	}

	lineCross := make([]float64, len(lines))
	for i, line := range lines {
		for _, it := range line {
			if it.cross > lineCross[i] {
				lineCross[i] = it.cross
			}
		}
	}

	// Cross-axis available space. Row: the definite content height, if
	// any. Column: the content width, always definite.
	crossAvail := cbHeight
	if !row {
		crossAvail = cw
	}
	crossUsed := crossGap * float64(len(lines)-1)
	for _, c := range lineCross {
		crossUsed += c
	}
	if len(lines) == 1 && crossAvail >= 0 {
		// A single line fills the container's cross size.
		lineCross[0] = crossAvail
		crossUsed = crossAvail
	}

	crossStart, crossBetween := 0.0, 0.0
	if crossAvail >= 0 && len(lines) > 1 {
		free := crossAvail - crossUsed
		if style.AlignContent() == css.AlignStretch && free > 0 {
			extra := free / float64(len(lines))
			for i := range lineCross {
				lineCross[i] += extra
			}
		} else {
			crossStart, crossBetween = distributeFree(style.AlignContent(), free, len(lines))
		}
	}

	// Used main extent, for sizing the container on the main axis and for
	// resolving justification against a definite main size.
	usedMain := 0.0
	for _, line := range lines {
		extent := mainGap * float64(len(line)-1)
		for _, it := range line {
			extent += it.outer()
		}
		if extent > usedMain {
			usedMain = extent
		}
	}
	justifyAvail := mainAvail
	if justifyAvail < 0 {
		justifyAvail = usedMain
	}

	crossPos := crossStart
	for li, line := range lines {
		free := justifyAvail
		for _, it := range line {
			free -= it.outer()
		}
		free -= mainGap * float64(len(line)-1)
		mainStart, mainBetween := distributeFree(style.JustifyContent(), free, len(line))

		placed := line
		if dir == css.FlexRowReverse || dir == css.FlexColumnReverse {
			placed = make([]*flexItem, len(line))
			for i, it := range line {
				placed[len(line)-1-i] = it
			}
		}

		mainPos := mainStart
		for _, it := range placed {
			e.placeFlexItem(b, it, row, mainPos, crossPos, lineCross[li], alignDefault)
			mainPos += it.outer() + mainGap + mainBetween
		}
		crossPos += lineCross[li] + crossGap + crossBetween
	}

	// Auto container height: row containers are as tall as their lines,
	// column containers as tall as their longest line.
	if row {
		b.Dims.Content.Height = crossUsed
	} else {
		b.Dims.Content.Height = usedMain
	}
}

// prepareFlexItem resolves one item's flex inputs. mainAvail < 0 means
// the main size is indefinite, so percentage bases fall back to content.
func (e *Engine) prepareFlexItem(box *Box, row bool, cw, mainAvail float64) *flexItem {
	it := &flexItem{box: box, shrink: 1, max: math.Inf(1)}

	style := box.Style()
	if style != nil && box.Node != nil {
		it.grow = style.FlexGrow()
		it.shrink = style.FlexShrink()
		it.order = style.Order()

		pad := paddingEdges(style, cw)
		bor := borderEdges(style, cw)
		mt := edgePx(style.Value("margin-top"), cw)
		mb := edgePx(style.Value("margin-bottom"), cw)
		ml := edgePx(style.Value("margin-left"), cw)
		mr := edgePx(style.Value("margin-right"), cw)
		if row {
			it.edgesMain = pad.Horizontal() + bor.Horizontal()
			it.marginMain = ml + mr
			it.marginCross = mt + mb
		} else {
			it.edgesMain = pad.Vertical() + bor.Vertical()
			it.marginMain = mt + mb
			it.marginCross = ml + mr
		}
	}

	it.base = e.flexBaseSize(it, row, cw, mainAvail)

	if style != nil && box.Node != nil {
		minProp, maxProp := "min-height", "max-height"
		if row {
			minProp, maxProp = "min-width", "max-width"
		}
		if v, ok := definiteLength(style.Value(minProp), mainAvail); ok {
			it.min = v
		}
		if v, ok := definiteLength(style.Value(maxProp), mainAvail); ok {
			it.max = v
		}
	}
	if it.max < it.min {
		it.max = it.min
	}
	return it
}

// flexBaseSize resolves flex-basis to a content main size. auto defers
// to the main size property; if that is also auto the item's content
// size is used.
func (e *Engine) flexBaseSize(it *flexItem, row bool, cw, mainAvail float64) float64 {
	style := it.box.Style()
	if style == nil || it.box.Node == nil {
		return e.flexContentSize(it.box, row, cw)
	}

	basis := style.Value("flex-basis")
	if !basis.IsAuto() && basis.Keyword != "content" {
		if v, ok := definiteLength(basis, mainAvail); ok {
			return v
		}
		return e.flexContentSize(it.box, row, cw)
	}
	if basis.IsAuto() {
		prop := "height"
		if row {
			prop = "width"
		}
		if v, ok := definiteLength(style.Value(prop), mainAvail); ok {
			return v
		}
	}
	return e.flexContentSize(it.box, row, cw)
}

// flexContentSize measures an item's natural main content size: the
// max-content width on a row axis, the laid-out height on a column axis.
func (e *Engine) flexContentSize(box *Box, row bool, cw float64) float64 {
	if row {
		w := e.maxContentWidth(box) - selfHorizontalEdges(box)
		if w > cw {
			w = cw
		}
		if w < 0 {
			w = 0
		}
		return w
	}
	e.layoutBoxAtOrigin(box, cw, cw-selfHorizontalEdges(box)-childMarginWidth(box), -1)
	return box.Dims.Content.Height
}

// collectFlexLines splits items into lines. nowrap yields one line; with
// wrapping an item that would overflow the main size starts a new line,
// except as the first item of its line.
func (e *Engine) collectFlexLines(items []*flexItem, wrap css.FlexWrap, mainAvail, gap float64) [][]*flexItem {
	if wrap == css.WrapNone || mainAvail < 0 {
		return [][]*flexItem{items}
	}
	var lines [][]*flexItem
	var cur []*flexItem
	used := 0.0
	for _, it := range items {
		outer := clampFlex(it.base, it.min, it.max) + it.edgesMain + it.marginMain
		advance := outer
		if len(cur) > 0 {
			advance += gap
		}
		if len(cur) > 0 && used+advance > mainAvail {
			lines = append(lines, cur)
			cur, used, advance = nil, 0, outer
		}
		cur = append(cur, it)
		used += advance
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// resolveFlexibleLengths distributes the line's free space by grow or
// shrink factors, clamping each item to its min/max and freezing clamped
// items, then redistributing among the rest until no violations remain.
// Each pass freezes at least one item, so the loop runs at most one
// iteration per item.
func (e *Engine) resolveFlexibleLengths(line []*flexItem, mainAvail, gap float64) {
	if mainAvail < 0 {
		for _, it := range line {
			it.size = clampFlex(it.base, it.min, it.max)
			it.frozen = true
		}
		return
	}

	inner := mainAvail - gap*float64(len(line)-1)
	sumBase := 0.0
	for _, it := range line {
		sumBase += it.base + it.edgesMain + it.marginMain
	}
	growing := inner > sumBase

	// Inflexible items freeze at their clamped base immediately.
	for _, it := range line {
		it.size = clampFlex(it.base, it.min, it.max)
		factor := it.grow
		if !growing {
			factor = it.shrink
		}
		if factor == 0 || (growing && it.base > it.size) || (!growing && it.base < it.size) {
			it.frozen = true
		}
	}

	const eps = 1e-6
	for pass := 0; pass <= len(line); pass++ {
		free := inner
		sumFactor := 0.0
		sumScaled := 0.0
		anyUnfrozen := false
		for _, it := range line {
			if it.frozen {
				free -= it.outer()
				continue
			}
			anyUnfrozen = true
			free -= it.base + it.edgesMain + it.marginMain
			sumFactor += it.grow
			sumScaled += it.shrink * it.base
		}
		if !anyUnfrozen {
			break
		}
		if (growing && sumFactor <= 0) || (!growing && sumScaled <= 0) {
			for _, it := range line {
				if !it.frozen {
					it.size = clampFlex(it.base, it.min, it.max)
					it.frozen = true
				}
			}
			break
		}

		violations := make(map[*flexItem]float64, len(line))
		total := 0.0
		for _, it := range line {
			if it.frozen {
				continue
			}
			var target float64
			if growing {
				target = it.base + free*it.grow/sumFactor
			} else {
				target = it.base + free*(it.shrink*it.base)/sumScaled
			}
			clamped := clampFlex(target, it.min, it.max)
			violations[it] = clamped - target
			it.size = clamped
			total += clamped - target
		}

		switch {
		case total > eps:
			for it, v := range violations {
				if v > 0 {
					it.frozen = true
				}
			}
		case total < -eps:
			for it, v := range violations {
				if v < 0 {
					it.frozen = true
				}
			}
		default:
			for it := range violations {
				it.frozen = true
			}
		}
	}
}

// layoutFlexItemGeometry lays the item out at the origin with its flexed
// main size and records the resulting outer cross size.
func (e *Engine) layoutFlexItemGeometry(it *flexItem, row bool, cw float64, stretch bool) {
	box := it.box
	if row {
		e.layoutBoxAtOrigin(box, cw, it.size, -1)
		it.cross = box.Dims.MarginBox().Height
		return
	}

	// Column: the cross axis is horizontal. Stretching items fill the
	// container width; others shrink to fit their content.
	width := cw - it.marginCross - selfHorizontalEdges(box)
	if !stretch || hasDefiniteWidth(box) {
		if w, ok := e.shrinkToFitWidth(box, cw); ok {
			width = w
		}
	}
	e.layoutBoxAtOrigin(box, cw, width, -1)
	box.Dims.Content.Height = it.size
	box.Dims.Resolved = true
	it.cross = box.Dims.MarginBox().Width
}

func hasDefiniteWidth(box *Box) bool {
	style := box.Style()
	if style == nil || box.Node == nil {
		return false
	}
	_, ok := definiteLength(style.Value("width"), -1)
	return ok
}

// shrinkToFitWidth is the content width of a box that sizes to its
// content: its definite width if any, otherwise the max-content width
// capped by the available space.
func (e *Engine) shrinkToFitWidth(box *Box, cw float64) (float64, bool) {
	style := box.Style()
	if style != nil && box.Node != nil {
		if w, ok := definiteLength(style.Value("width"), cw); ok {
			return w, true
		}
	}
	w := e.maxContentWidth(box) - selfHorizontalEdges(box)
	limit := cw - childMarginWidth(box) - selfHorizontalEdges(box)
	if w > limit {
		w = limit
	}
	if w < 0 {
		w = 0
	}
	return w, true
}

// placeFlexItem shifts a laid-out item to its main/cross position inside
// the container's content box and applies cross-axis alignment.
func (e *Engine) placeFlexItem(b *Box, it *flexItem, row bool, mainPos, crossPos, lineCross float64, alignDefault css.Alignment) {
	align := itemAlignment(it, alignDefault)

	outerCross := it.cross
	crossOffset := 0.0
	switch align {
	case css.AlignEnd:
		crossOffset = lineCross - outerCross
	case css.AlignCenter:
		crossOffset = (lineCross - outerCross) / 2
	case css.AlignStretch:
		if !hasDefiniteCross(it.box, row) {
			e.stretchCross(it, row, lineCross)
		}
	}

	mb := it.box.Dims.MarginBox()
	var dx, dy float64
	if row {
		dx = b.Dims.Content.X + mainPos - mb.X
		dy = b.Dims.Content.Y + crossPos + crossOffset - mb.Y
	} else {
		dx = b.Dims.Content.X + crossPos + crossOffset - mb.X
		dy = b.Dims.Content.Y + mainPos - mb.Y
	}
	it.box.shift(dx, dy)
}

func hasDefiniteCross(box *Box, row bool) bool {
	style := box.Style()
	if style == nil || box.Node == nil {
		return false
	}
	prop := "width"
	if row {
		prop = "height"
	}
	_, ok := definiteLength(style.Value(prop), -1)
	return ok
}

// stretchCross grows the item's cross content size to fill the line.
// Children keep the geometry from the initial pass.
func (e *Engine) stretchCross(it *flexItem, row bool, lineCross float64) {
	box := it.box
	target := lineCross - it.marginCross
	if row {
		inner := target - box.Dims.Padding.Vertical() - box.Dims.Border.Vertical()
		if inner > box.Dims.Content.Height {
			box.Dims.Content.Height = inner
		}
		it.cross = box.Dims.MarginBox().Height
	} else {
		inner := target - box.Dims.Padding.Horizontal() - box.Dims.Border.Horizontal()
		if inner > box.Dims.Content.Width {
			box.Dims.Content.Width = inner
		}
		it.cross = box.Dims.MarginBox().Width
	}
}

func itemAlignment(it *flexItem, def css.Alignment) css.Alignment {
	style := it.box.Style()
	if style == nil || it.box.Node == nil {
		return def
	}
	if self := style.AlignSelf(); self != css.AlignAuto {
		return self
	}
	return def
}

// distributeFree converts a content-distribution keyword plus the free
// space into a leading offset and an extra gap between successive items.
// Negative free space only shifts for center and end alignment.
func distributeFree(align css.Alignment, free float64, n int) (start, between float64) {
	if n <= 0 {
		return 0, 0
	}
	if free < 0 {
		switch align {
		case css.AlignEnd:
			return free, 0
		case css.AlignCenter:
			return free / 2, 0
		}
		return 0, 0
	}
	switch align {
	case css.AlignEnd:
		return free, 0
	case css.AlignCenter:
		return free / 2, 0
	case css.AlignSpaceBetween:
		if n > 1 {
			return 0, free / float64(n-1)
		}
		return 0, 0
	case css.AlignSpaceAround:
		around := free / float64(n)
		return around / 2, around
	case css.AlignSpaceEvenly:
		evenly := free / float64(n+1)
		return evenly, evenly
	}
	return 0, 0
}

func clampFlex(v, min, max float64) float64 {
	if v > max {
		v = max
	}
	if v < min {
		v = min
	}
	if v < 0 {
		return 0
	}
	return v
}
