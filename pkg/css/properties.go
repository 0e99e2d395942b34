package css

// Typed accessors for the handful of properties layout branches on.
// Anything dimensional is returned as a Value so layout can resolve
// percentages against the right containing block.

type DisplayType string

const (
	DisplayBlock       DisplayType = "block"
	DisplayInline      DisplayType = "inline"
	DisplayInlineBlock DisplayType = "inline-block"
	DisplayFlex        DisplayType = "flex"
	DisplayGrid        DisplayType = "grid"
	DisplayNone        DisplayType = "none"
)

func (cs *ComputedStyle) Display() DisplayType {
	switch cs.Value("display").Keyword {
	case "none":
		return DisplayNone
	case "block":
		return DisplayBlock
	case "inline-block":
		return DisplayInlineBlock
	case "flex", "inline-flex":
		return DisplayFlex
	case "grid", "inline-grid":
		return DisplayGrid
	}
	return DisplayInline
}

// IsBlockLevel reports whether the element establishes a block-level box.
func (cs *ComputedStyle) IsBlockLevel() bool {
	switch cs.Display() {
	case DisplayBlock, DisplayFlex, DisplayGrid:
		return true
	}
	return false
}

type PositionType string

const (
	PositionStatic   PositionType = "static"
	PositionRelative PositionType = "relative"
	PositionAbsolute PositionType = "absolute"
	PositionFixed    PositionType = "fixed"
	PositionSticky   PositionType = "sticky"
)

func (cs *ComputedStyle) Position() PositionType {
	switch cs.Value("position").Keyword {
	case "relative":
		return PositionRelative
	case "absolute":
		return PositionAbsolute
	case "fixed":
		return PositionFixed
	case "sticky":
		return PositionSticky
	}
	return PositionStatic
}

// ZIndex returns the z-index and whether it was specified (auto returns
// 0, false).
func (cs *ComputedStyle) ZIndex() (int, bool) {
	v := cs.Value("z-index")
	if v.Kind == NumberValue {
		return int(v.Number), true
	}
	return 0, false
}

// Opacity returns the clamped opacity in [0,1].
func (cs *ComputedStyle) Opacity() float64 {
	v := cs.Value("opacity")
	if v.Kind != NumberValue {
		return 1
	}
	if v.Number < 0 {
		return 0
	}
	if v.Number > 1 {
		return 1
	}
	return v.Number
}

// HasTransform reports whether transform is anything but none.
func (cs *ComputedStyle) HasTransform() bool {
	v := cs.Value("transform")
	return !(v.Kind == KeywordValue && (v.Keyword == "none" || v.Keyword == ""))
}

type FlexDirection string

const (
	FlexRow           FlexDirection = "row"
	FlexRowReverse    FlexDirection = "row-reverse"
	FlexColumn        FlexDirection = "column"
	FlexColumnReverse FlexDirection = "column-reverse"
)

func (cs *ComputedStyle) FlexDirection() FlexDirection {
	switch cs.Value("flex-direction").Keyword {
	case "row-reverse":
		return FlexRowReverse
	case "column":
		return FlexColumn
	case "column-reverse":
		return FlexColumnReverse
	}
	return FlexRow
}

type FlexWrap string

const (
	WrapNone    FlexWrap = "nowrap"
	Wrap        FlexWrap = "wrap"
	WrapReverse FlexWrap = "wrap-reverse"
)

func (cs *ComputedStyle) FlexWrap() FlexWrap {
	switch cs.Value("flex-wrap").Keyword {
	case "wrap":
		return Wrap
	case "wrap-reverse":
		return WrapReverse
	}
	return WrapNone
}

// Alignment covers justify-content, align-items, align-content and the
// per-item -self overrides; not every value is meaningful everywhere.
type Alignment string

const (
	AlignAuto         Alignment = "auto"
	AlignStart        Alignment = "flex-start"
	AlignEnd          Alignment = "flex-end"
	AlignCenter       Alignment = "center"
	AlignStretch      Alignment = "stretch"
	AlignSpaceBetween Alignment = "space-between"
	AlignSpaceAround  Alignment = "space-around"
	AlignSpaceEvenly  Alignment = "space-evenly"
)

func alignmentOf(kw string, def Alignment) Alignment {
	switch kw {
	case "flex-start", "start":
		return AlignStart
	case "flex-end", "end":
		return AlignEnd
	case "center":
		return AlignCenter
	case "stretch":
		return AlignStretch
	case "space-between":
		return AlignSpaceBetween
	case "space-around":
		return AlignSpaceAround
	case "space-evenly":
		return AlignSpaceEvenly
	case "auto":
		return AlignAuto
	}
	return def
}

func (cs *ComputedStyle) JustifyContent() Alignment {
	return alignmentOf(cs.Value("justify-content").Keyword, AlignStart)
}

func (cs *ComputedStyle) AlignItems() Alignment {
	return alignmentOf(cs.Value("align-items").Keyword, AlignStretch)
}

func (cs *ComputedStyle) AlignSelf() Alignment {
	return alignmentOf(cs.Value("align-self").Keyword, AlignAuto)
}

func (cs *ComputedStyle) AlignContent() Alignment {
	return alignmentOf(cs.Value("align-content").Keyword, AlignStretch)
}

func (cs *ComputedStyle) JustifyItems() Alignment {
	return alignmentOf(cs.Value("justify-items").Keyword, AlignStretch)
}

func (cs *ComputedStyle) JustifySelf() Alignment {
	return alignmentOf(cs.Value("justify-self").Keyword, AlignAuto)
}

func (cs *ComputedStyle) FlexGrow() float64 {
	if v := cs.Value("flex-grow"); v.Kind == NumberValue {
		return v.Number
	}
	return 0
}

func (cs *ComputedStyle) FlexShrink() float64 {
	if v := cs.Value("flex-shrink"); v.Kind == NumberValue {
		return v.Number
	}
	return 1
}

func (cs *ComputedStyle) Order() int {
	if v := cs.Value("order"); v.Kind == NumberValue {
		return int(v.Number)
	}
	return 0
}

// Bold reports whether font-weight resolves to a bold face.
func (cs *ComputedStyle) Bold() bool {
	switch cs.Value("font-weight").Keyword {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	v := cs.Value("font-weight")
	return v.Kind == NumberValue && v.Number >= 600
}

func (cs *ComputedStyle) Italic() bool {
	kw := cs.Value("font-style").Keyword
	return kw == "italic" || kw == "oblique"
}

// LineHeight returns the used line height in px. "normal" is 1.2 times
// the font size; a bare number multiplies the font size.
func (cs *ComputedStyle) LineHeight() float64 {
	v := cs.Value("line-height")
	switch v.Kind {
	case LengthValue:
		return v.Length
	case NumberValue:
		return v.Number * cs.FontSize
	case PercentValue:
		return v.Percent / 100 * cs.FontSize
	}
	return cs.FontSize * 1.2
}

type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignRight  TextAlign = "right"
	TextAlignCenter TextAlign = "center"
)

func (cs *ComputedStyle) TextAlign() TextAlign {
	switch cs.Value("text-align").Keyword {
	case "right":
		return TextAlignRight
	case "center":
		return TextAlignCenter
	}
	return TextAlignLeft
}
