package css

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value variants.
type ValueKind int

const (
	KeywordValue ValueKind = iota
	LengthValue
	PercentValue
	NumberValue
	ColorValue
)

// Unit tags a length. The cascade converts em and rem to px, so layout
// only ever sees px lengths.
type Unit int

const (
	UnitPx Unit = iota
	UnitEm
	UnitRem
)

// Value is one CSS value: a keyword, a length, a percentage, a bare
// number or a color. Percentages stay symbolic until layout resolves
// them against the right containing size.
type Value struct {
	Kind    ValueKind
	Keyword string
	Length  float64
	Unit    Unit
	Percent float64
	Number  float64
	Color   Color
}

// Keyword builds a keyword value.
func Keyword(kw string) Value { return Value{Kind: KeywordValue, Keyword: kw} }

// Px builds a pixel length.
func Px(v float64) Value { return Value{Kind: LengthValue, Length: v, Unit: UnitPx} }

// Em builds a font-relative length.
func Em(v float64) Value { return Value{Kind: LengthValue, Length: v, Unit: UnitEm} }

// Percent builds a percentage value.
func Percent(v float64) Value { return Value{Kind: PercentValue, Percent: v} }

// Number builds a unitless number.
func Number(v float64) Value { return Value{Kind: NumberValue, Number: v} }

// ColorOf builds a color value from 8-bit channels.
func ColorOf(r, g, b, a uint8) Value {
	return Value{Kind: ColorValue, Color: Color{R: r, G: g, B: b, A: a}}
}

// IsAuto reports whether the value is the auto keyword.
func (v Value) IsAuto() bool {
	return v.Kind == KeywordValue && v.Keyword == "auto"
}

// IsKeyword reports whether the value is the given keyword.
func (v Value) IsKeyword(kw string) bool {
	return v.Kind == KeywordValue && v.Keyword == kw
}

// ToPx resolves the value to pixels against a containing size.
// Keywords resolve to 0; callers branch on kind first when auto or none
// must mean something else.
func (v Value) ToPx(containing float64) float64 {
	switch v.Kind {
	case LengthValue:
		return v.Length
	case PercentValue:
		return v.Percent / 100 * containing
	case NumberValue:
		return v.Number
	}
	return 0
}

func (v Value) String() string {
	switch v.Kind {
	case LengthValue:
		return strconv.FormatFloat(v.Length, 'g', -1, 64) + "px"
	case PercentValue:
		return strconv.FormatFloat(v.Percent, 'g', -1, 64) + "%"
	case NumberValue:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case ColorValue:
		return v.Color.String()
	}
	return v.Keyword
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

var namedColors = map[string]Color{
	"transparent": {0, 0, 0, 0},
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"maroon":      {128, 0, 0, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"olive":       {128, 128, 0, 255},
	"lime":        {0, 255, 0, 255},
	"aqua":        {0, 255, 255, 255},
	"cyan":        {0, 255, 255, 255},
	"fuchsia":     {255, 0, 255, 255},
	"magenta":     {255, 0, 255, 255},
}

// ParseColor parses #rgb, #rrggbb and #rrggbbaa hex notation.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	hex := func(sub string) (uint8, bool) {
		n, err := strconv.ParseUint(sub, 16, 8)
		return uint8(n), err == nil
	}
	switch len(s) {
	case 3:
		r, ok1 := hex(string([]byte{s[0], s[0]}))
		g, ok2 := hex(string([]byte{s[1], s[1]}))
		b, ok3 := hex(string([]byte{s[2], s[2]}))
		if ok1 && ok2 && ok3 {
			return Color{r, g, b, 255}, true
		}
	case 6:
		r, ok1 := hex(s[0:2])
		g, ok2 := hex(s[2:4])
		b, ok3 := hex(s[4:6])
		if ok1 && ok2 && ok3 {
			return Color{r, g, b, 255}, true
		}
	case 8:
		r, ok1 := hex(s[0:2])
		g, ok2 := hex(s[2:4])
		b, ok3 := hex(s[4:6])
		a, ok4 := hex(s[6:8])
		if ok1 && ok2 && ok3 && ok4 {
			return Color{r, g, b, a}, true
		}
	}
	return Color{}, false
}

// lengthSuffixes is checked in order: rem before em, or "5rem" would
// parse as the em length "5r".
var lengthSuffixes = []struct {
	suffix string
	unit   Unit
}{
	{"px", UnitPx},
	{"rem", UnitRem},
	{"em", UnitEm},
}

// ParseValue parses one value token. Multi-token values (track lists,
// span notation) come through as a single keyword for the consumer to
// interpret. Unparseable input yields ok=false.
func ParseValue(raw string) (Value, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Value{}, false
	}

	if strings.HasPrefix(raw, "#") {
		if c, ok := ParseColor(raw); ok {
			return Value{Kind: ColorValue, Color: c}, true
		}
		return Value{}, false
	}

	lower := strings.ToLower(raw)

	for _, ls := range lengthSuffixes {
		if strings.HasSuffix(lower, ls.suffix) {
			if f, err := strconv.ParseFloat(strings.TrimSuffix(lower, ls.suffix), 64); err == nil {
				return Value{Kind: LengthValue, Length: f, Unit: ls.unit}, true
			}
		}
	}

	if strings.HasSuffix(lower, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(lower, "%"), 64); err == nil {
			return Value{Kind: PercentValue, Percent: f}, true
		}
	}

	if f, err := strconv.ParseFloat(lower, 64); err == nil {
		return Value{Kind: NumberValue, Number: f}, true
	}

	if c, ok := namedColors[lower]; ok {
		return Value{Kind: ColorValue, Color: c}, true
	}

	return Keyword(lower), true
}
