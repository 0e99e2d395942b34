package layout

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"kestrel/pkg/css"
)

// trackKind discriminates track sizing functions.
type trackKind int

const (
	trackFixed trackKind = iota
	trackPercent
	trackFr
	trackAuto
	trackMinContent
	trackMaxContent
	trackMinMax
)

// trackFunc is one entry of a template track list.
type trackFunc struct {
	kind trackKind
	px   float64
	pct  float64
	fr   float64

	// minmax bounds
	lo *trackFunc
	hi *trackFunc
}

// parseTrackList parses a grid-template value: a space-separated list of
// px, %, fr, auto, min-content, max-content, minmax(a, b) and
// repeat(n, ...). Unparseable entries become auto tracks; "none" is an
// empty list.
func parseTrackList(raw string) []trackFunc {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "none" {
		return nil
	}
	var tracks []trackFunc
	for _, tok := range splitTrackTokens(raw) {
		tracks = append(tracks, expandTrackToken(tok)...)
	}
	return tracks
}

// splitTrackTokens splits on top-level spaces, keeping functional
// notation like minmax(100px, 1fr) together.
func splitTrackTokens(raw string) []string {
	var tokens []string
	depth := 0
	start := -1
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ', '\t', '\n':
			if depth == 0 {
				if start >= 0 {
					tokens = append(tokens, raw[start:i])
					start = -1
				}
				continue
			}
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, raw[start:])
	}
	return tokens
}

func expandTrackToken(tok string) []trackFunc {
	if strings.HasPrefix(tok, "repeat(") && strings.HasSuffix(tok, ")") {
		inner := tok[len("repeat(") : len(tok)-1]
		comma := strings.Index(inner, ",")
		if comma < 0 {
			return []trackFunc{{kind: trackAuto}}
		}
		n, err := strconv.Atoi(strings.TrimSpace(inner[:comma]))
		if err != nil || n < 1 {
			return []trackFunc{{kind: trackAuto}}
		}
		// Repeat counts are capped so a hostile sheet cannot explode
		// the track list.
		if n > 1000 {
			n = 1000
		}
		unit := parseTrackList(inner[comma+1:])
		var out []trackFunc
		for i := 0; i < n; i++ {
			out = append(out, unit...)
		}
		return out
	}
	return []trackFunc{parseTrackFunc(tok)}
}

func parseTrackFunc(tok string) trackFunc {
	tok = strings.TrimSpace(tok)
	switch tok {
	case "auto":
		return trackFunc{kind: trackAuto}
	case "min-content":
		return trackFunc{kind: trackMinContent}
	case "max-content":
		return trackFunc{kind: trackMaxContent}
	}
	if strings.HasPrefix(tok, "minmax(") && strings.HasSuffix(tok, ")") {
		inner := tok[len("minmax(") : len(tok)-1]
		comma := strings.Index(inner, ",")
		if comma >= 0 {
			lo := parseTrackFunc(inner[:comma])
			hi := parseTrackFunc(inner[comma+1:])
			return trackFunc{kind: trackMinMax, lo: &lo, hi: &hi}
		}
		return trackFunc{kind: trackAuto}
	}
	if strings.HasSuffix(tok, "fr") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(tok, "fr"), 64); err == nil && f >= 0 {
			return trackFunc{kind: trackFr, fr: f}
		}
	}
	if v, ok := css.ParseValue(tok); ok {
		switch v.Kind {
		case css.LengthValue:
			return trackFunc{kind: trackFixed, px: v.Length}
		case css.PercentValue:
			return trackFunc{kind: trackPercent, pct: v.Percent}
		}
	}
	return trackFunc{kind: trackAuto}
}

// trackListFromValue resolves a template property to tracks. A single
// length or percentage parses to a typed value at cascade time; only
// multi-token lists arrive as keyword text.
func trackListFromValue(v css.Value) []trackFunc {
	switch v.Kind {
	case css.LengthValue:
		return []trackFunc{{kind: trackFixed, px: v.Length}}
	case css.PercentValue:
		return []trackFunc{{kind: trackPercent, pct: v.Percent}}
	case css.KeywordValue:
		return parseTrackList(v.Keyword)
	}
	return nil
}

func trackFromValue(v css.Value) trackFunc {
	switch v.Kind {
	case css.LengthValue:
		return trackFunc{kind: trackFixed, px: v.Length}
	case css.PercentValue:
		return trackFunc{kind: trackPercent, pct: v.Percent}
	case css.KeywordValue:
		return parseTrackFunc(v.Keyword)
	}
	return trackFunc{kind: trackAuto}
}

// gridPlacement is one axis of an item's resolved placement request.
type gridPlacement struct {
	start int // 0-based track index, -1 when auto
	span  int
}

// parseGridLine resolves a start/end property pair to a placement.
// Lines are 1-based; negative and zero lines are not supported and fall
// back to auto placement.
func parseGridLine(start, end css.Value) gridPlacement {
	sLine, sSpan := lineValue(start)
	eLine, eSpan := lineValue(end)

	switch {
	case sLine > 0 && eLine > 0:
		span := eLine - sLine
		if span < 1 {
			span = 1
		}
		return gridPlacement{start: sLine - 1, span: span}
	case sLine > 0 && eSpan > 0:
		return gridPlacement{start: sLine - 1, span: eSpan}
	case sLine > 0:
		return gridPlacement{start: sLine - 1, span: 1}
	case eLine > 0 && sSpan > 0:
		start := eLine - 1 - sSpan
		if start < 0 {
			start = 0
		}
		return gridPlacement{start: start, span: sSpan}
	case eLine > 1:
		return gridPlacement{start: eLine - 2, span: 1}
	case sSpan > 0:
		return gridPlacement{start: -1, span: sSpan}
	case eSpan > 0:
		return gridPlacement{start: -1, span: eSpan}
	}
	return gridPlacement{start: -1, span: 1}
}

// lineValue splits a grid line value into (line number, span count);
// zero means absent.
func lineValue(v css.Value) (line, span int) {
	switch v.Kind {
	case css.NumberValue:
		if n := int(v.Number); n > 0 {
			return n, 0
		}
	case css.KeywordValue:
		if strings.HasPrefix(v.Keyword, "span") {
			if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(v.Keyword, "span"))); err == nil && n > 0 {
				return 0, n
			}
		}
	}
	return 0, 0
}

// gridItem carries one item through placement and sizing.
type gridItem struct {
	box   *Box
	order int

	colReq gridPlacement
	rowReq gridPlacement

	col, row         int // final 0-based cell
	colSpan, rowSpan int
}

// layoutGridChildren lays out a grid container: parse the templates,
// auto-place the items, size columns then rows, and place each item in
// its cell area. cbHeight is the definite content height or negative.
func (e *Engine) layoutGridChildren(b *Box, cbHeight float64) {
	style := b.Style()
	if style == nil {
		b.Dims.Content.Height = 0
		return
	}
	cw := b.Dims.Content.Width
	colGap := edgePx(style.Value("column-gap"), cw)
	rowGap := edgePx(style.Value("row-gap"), cw)

	cols := trackListFromValue(style.Value("grid-template-columns"))
	rows := trackListFromValue(style.Value("grid-template-rows"))
	autoCol := trackFromValue(style.Value("grid-auto-columns"))
	autoRow := trackFromValue(style.Value("grid-auto-rows"))

	var items []*gridItem
	for _, child := range b.Children {
		if child.OutOfFlow() {
			e.layoutOutOfFlow(child, b.Dims.Content.X, b.Dims.Content.Y, cw, cbHeight)
			continue
		}
		it := &gridItem{box: child}
		if cs := child.Style(); cs != nil && child.Node != nil {
			it.order = cs.Order()
			it.colReq = parseGridLine(cs.Value("grid-column-start"), cs.Value("grid-column-end"))
			it.rowReq = parseGridLine(cs.Value("grid-row-start"), cs.Value("grid-row-end"))
		} else {
			it.colReq = gridPlacement{start: -1, span: 1}
			it.rowReq = gridPlacement{start: -1, span: 1}
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		b.Dims.Content.Height = 0
		return
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].order < items[j].order })

	flow := style.Value("grid-auto-flow").Keyword
	columnFlow := strings.Contains(flow, "column")
	dense := strings.Contains(flow, "dense")

	colCount, rowCount := placeGridItems(items, len(cols), len(rows), columnFlow, dense)
	e.log.Debug("grid placed", "items", len(items), "cols", colCount, "rows", rowCount)

	// Grow the track lists with implicit tracks where placement ran past
	// the explicit grid.
	for len(cols) < colCount {
		cols = append(cols, autoCol)
	}
	for len(rows) < rowCount {
		rows = append(rows, autoRow)
	}

	colSizes := e.sizeTracks(cols, cw, colGap, func(track int, min bool) float64 {
		return e.columnContentSize(items, track, min)
	})

	// Item heights need their final widths, so lay items out once the
	// columns are known.
	colPos := trackPositions(colSizes, colGap)
	for _, it := range items {
		areaW := spanExtent(colSizes, it.col, it.colSpan, colGap)
		e.layoutGridItemGeometry(it, cw, areaW, style)
	}

	rowAvail := cbHeight
	rowSizes := e.sizeTracks(rows, rowAvail, rowGap, func(track int, min bool) float64 {
		return gridRowContentSize(items, track)
	})
	growRowsForSpans(items, rowSizes, rowGap)
	rowPos := trackPositions(rowSizes, rowGap)

	for _, it := range items {
		area := Rect{
			X:      b.Dims.Content.X + colPos[it.col],
			Y:      b.Dims.Content.Y + rowPos[it.row],
			Width:  spanExtent(colSizes, it.col, it.colSpan, colGap),
			Height: spanExtent(rowSizes, it.row, it.rowSpan, rowGap),
		}
		e.placeGridItem(it, area, style)
	}

	total := rowGap * float64(len(rowSizes)-1)
	for _, s := range rowSizes {
		total += s
	}
	b.Dims.Content.Height = total
}

// placeGridItems assigns every item a cell. Explicitly placed items go
// first; auto items scan for the first free area, from the running
// cursor normally or from the grid start in dense mode. Returns the
// resulting column and row counts including implicit tracks.
func placeGridItems(items []*gridItem, explicitCols, explicitRows int, columnFlow, dense bool) (colCount, rowCount int) {
	colCount = explicitCols
	rowCount = explicitRows
	if !columnFlow && colCount == 0 {
		colCount = 1
	}
	if columnFlow && rowCount == 0 {
		rowCount = 1
	}

	occupied := make(map[[2]int]bool)
	occupy := func(it *gridItem) {
		for r := it.row; r < it.row+it.rowSpan; r++ {
			for c := it.col; c < it.col+it.colSpan; c++ {
				occupied[[2]int{r, c}] = true
			}
		}
		if it.col+it.colSpan > colCount {
			colCount = it.col + it.colSpan
		}
		if it.row+it.rowSpan > rowCount {
			rowCount = it.row + it.rowSpan
		}
	}
	free := func(row, col, rowSpan, colSpan int) bool {
		for r := row; r < row+rowSpan; r++ {
			for c := col; c < col+colSpan; c++ {
				if occupied[[2]int{r, c}] {
					return false
				}
			}
		}
		return true
	}

	// Fully explicit items claim their cells first.
	var autos []*gridItem
	for _, it := range items {
		it.colSpan = it.colReq.span
		it.rowSpan = it.rowReq.span
		if it.colReq.start >= 0 && it.rowReq.start >= 0 {
			it.col = it.colReq.start
			it.row = it.rowReq.start
			occupy(it)
			continue
		}
		autos = append(autos, it)
	}

	curRow, curCol := 0, 0
	for _, it := range autos {
		r, c := curRow, curCol
		if dense {
			r, c = 0, 0
		}
		// One axis may still be pinned.
		switch {
		case !columnFlow && it.colReq.start >= 0:
			it.col = it.colReq.start
			row := 0
			if !dense {
				row = curRow
			}
			for !free(row, it.col, it.rowSpan, it.colSpan) {
				row++
			}
			it.row = row
		case columnFlow && it.rowReq.start >= 0:
			it.row = it.rowReq.start
			col := 0
			if !dense {
				col = curCol
			}
			for !free(it.row, col, it.rowSpan, it.colSpan) {
				col++
			}
			it.col = col
		case !columnFlow:
			for {
				if c+it.colSpan > colCount && c > 0 {
					r++
					c = 0
					continue
				}
				if free(r, c, it.rowSpan, it.colSpan) {
					break
				}
				c++
			}
			it.row, it.col = r, c
			if !dense {
				curRow, curCol = r, c+it.colSpan
			}
		default:
			for {
				if r+it.rowSpan > rowCount && r > 0 {
					c++
					r = 0
					continue
				}
				if free(r, c, it.rowSpan, it.colSpan) {
					break
				}
				r++
			}
			it.row, it.col = r, c
			if !dense {
				curRow, curCol = r+it.rowSpan, c
			}
		}
		occupy(it)
	}
	return colCount, rowCount
}

// sizeTracks resolves a track list to used sizes. avail < 0 means the
// axis is indefinite: percentages and fr fall back to content sizing.
// content(track, min) reports the min- or max-content contribution of
// the items whose span starts and ends in that track.
func (e *Engine) sizeTracks(tracks []trackFunc, avail, gap float64, content func(track int, min bool) float64) []float64 {
	sizes := make([]float64, len(tracks))
	limits := make([]float64, len(tracks))
	flexible := make([]float64, len(tracks))

	for i, t := range tracks {
		sizes[i], limits[i], flexible[i] = e.trackBase(t, i, avail, content)
	}

	if avail < 0 {
		// Indefinite axis: fr tracks take their content size.
		for i := range tracks {
			if flexible[i] > 0 && content != nil {
				if c := content(i, false); c > sizes[i] {
					sizes[i] = c
				}
			}
		}
		return sizes
	}

	sumFr := 0.0
	for i := range tracks {
		sumFr += flexible[i]
	}

	if sumFr > 0 {
		// Find the fr unit: flexible tracks whose base already exceeds
		// their share drop out and keep their base, and the unit is
		// recomputed over the rest.
		space := avail - gap*float64(len(tracks)-1)
		active := make([]bool, len(tracks))
		frLeft := sumFr
		for i := range tracks {
			if flexible[i] > 0 {
				active[i] = true
			} else {
				space -= sizes[i]
			}
		}
		for {
			if frLeft <= 0 || space <= 0 {
				break
			}
			per := space / frLeft
			settled := true
			for i := range tracks {
				if active[i] && per*flexible[i] < sizes[i] {
					active[i] = false
					space -= sizes[i]
					frLeft -= flexible[i]
					settled = false
				}
			}
			if settled {
				for i := range tracks {
					if active[i] {
						sizes[i] = per * flexible[i]
					}
				}
				break
			}
		}
		return sizes
	}

	used := gap * float64(len(tracks)-1)
	for i := range tracks {
		used += sizes[i]
	}
	freeSpace := avail - used

	if freeSpace > 0 {
		// No fr tracks: growable tracks absorb the free space up to
		// their growth limits.
		var growable []int
		for i := range tracks {
			if limits[i] > sizes[i] {
				growable = append(growable, i)
			}
		}
		if len(growable) > 0 {
			per := freeSpace / float64(len(growable))
			for _, i := range growable {
				grown := sizes[i] + per
				if grown > limits[i] {
					grown = limits[i]
				}
				sizes[i] = grown
			}
		}
	}
	return sizes
}

// trackBase resolves one track function to (base size, growth limit,
// flex factor).
func (e *Engine) trackBase(t trackFunc, index int, avail float64, content func(track int, min bool) float64) (base, limit, fr float64) {
	measure := func(min bool) float64 {
		if content == nil {
			return 0
		}
		return content(index, min)
	}
	switch t.kind {
	case trackFixed:
		return t.px, t.px, 0
	case trackPercent:
		if avail >= 0 {
			v := t.pct / 100 * avail
			return v, v, 0
		}
		return measure(false), math.Inf(1), 0
	case trackFr:
		return 0, math.Inf(1), t.fr
	case trackMinContent:
		v := measure(true)
		return v, v, 0
	case trackMaxContent:
		v := measure(false)
		return v, v, 0
	case trackMinMax:
		lo, _, _ := e.trackBase(*t.lo, index, avail, content)
		if t.hi.kind == trackFr {
			return lo, math.Inf(1), t.hi.fr
		}
		hi, _, _ := e.trackBase(*t.hi, index, avail, content)
		if hi < lo {
			hi = lo
		}
		return lo, hi, 0
	}
	// auto: min-content floor, max-content growth limit.
	return measure(true), math.Max(measure(true), measure(false)), 0
}

// columnContentSize is the widest min- or max-content contribution of
// the single-span items occupying the column.
func (e *Engine) columnContentSize(items []*gridItem, track int, min bool) float64 {
	var widest float64
	for _, it := range items {
		if it.col != track || it.colSpan != 1 {
			continue
		}
		var w float64
		if min {
			w = e.minContentWidth(it.box)
		} else {
			w = e.maxContentWidth(it.box)
		}
		w += childMarginWidth(it.box)
		if w > widest {
			widest = w
		}
	}
	return widest
}

// gridRowContentSize is the tallest single-span item in the row, using
// heights from the geometry pass.
func gridRowContentSize(items []*gridItem, track int) float64 {
	var tallest float64
	for _, it := range items {
		if it.row != track || it.rowSpan != 1 {
			continue
		}
		if h := it.box.Dims.MarginBox().Height; h > tallest {
			tallest = h
		}
	}
	return tallest
}

// growRowsForSpans widens the last spanned row of any multi-row item
// that still overflows its rows.
func growRowsForSpans(items []*gridItem, rowSizes []float64, gap float64) {
	for _, it := range items {
		if it.rowSpan <= 1 {
			continue
		}
		have := spanExtent(rowSizes, it.row, it.rowSpan, gap)
		need := it.box.Dims.MarginBox().Height
		if need > have {
			rowSizes[it.row+it.rowSpan-1] += need - have
		}
	}
}

func trackPositions(sizes []float64, gap float64) []float64 {
	pos := make([]float64, len(sizes))
	cur := 0.0
	for i, s := range sizes {
		pos[i] = cur
		cur += s + gap
	}
	return pos
}

func spanExtent(sizes []float64, start, span int, gap float64) float64 {
	total := gap * float64(span-1)
	for i := start; i < start+span && i < len(sizes); i++ {
		total += sizes[i]
	}
	return total
}

// layoutGridItemGeometry lays an item out at the origin with the width
// its cell area and justification dictate.
func (e *Engine) layoutGridItemGeometry(it *gridItem, cw, areaW float64, container *css.ComputedStyle) {
	justify := gridItemJustify(it.box, container)
	width := areaW - childMarginWidth(it.box) - selfHorizontalEdges(it.box)
	if justify != css.AlignStretch || hasDefiniteWidth(it.box) {
		if w, ok := e.shrinkToFitWidth(it.box, areaW); ok {
			width = w
		}
	}
	e.layoutBoxAtOrigin(it.box, cw, width, -1)
}

// placeGridItem aligns a laid-out item inside its cell area and shifts
// it into place.
func (e *Engine) placeGridItem(it *gridItem, area Rect, container *css.ComputedStyle) {
	box := it.box
	mb := box.Dims.MarginBox()

	justify := gridItemJustify(box, container)
	align := gridItemAlign(box, container)

	var dx float64
	switch justify {
	case css.AlignEnd:
		dx = area.Width - mb.Width
	case css.AlignCenter:
		dx = (area.Width - mb.Width) / 2
	}

	var dy float64
	switch align {
	case css.AlignEnd:
		dy = area.Height - mb.Height
	case css.AlignCenter:
		dy = (area.Height - mb.Height) / 2
	case css.AlignStretch:
		if !hasDefiniteCross(box, true) {
			inner := area.Height - box.Dims.Margin.Vertical() -
				box.Dims.Border.Vertical() - box.Dims.Padding.Vertical()
			if inner > box.Dims.Content.Height {
				box.Dims.Content.Height = inner
			}
		}
	}

	mb = box.Dims.MarginBox()
	box.shift(area.X+dx-mb.X, area.Y+dy-mb.Y)
}

func gridItemJustify(box *Box, container *css.ComputedStyle) css.Alignment {
	if style := box.Style(); style != nil && box.Node != nil {
		if self := style.JustifySelf(); self != css.AlignAuto {
			return self
		}
	}
	return container.JustifyItems()
}

func gridItemAlign(box *Box, container *css.ComputedStyle) css.Alignment {
	if style := box.Style(); style != nil && box.Node != nil {
		if self := style.AlignSelf(); self != css.AlignAuto {
			return self
		}
	}
	return container.AlignItems()
}
