package css

import (
	"sort"

	"kestrel/pkg/dom"
)

// DefaultFontSize is the medium font size used when nothing else applies.
const DefaultFontSize = 16.0

// ComputedStyle is the fully resolved style of one element: every supported
// property has a value, with no inherit tokens left. Percentages stay
// symbolic for layout; font-relative lengths were already converted to px.
// Immutable after Resolve.
type ComputedStyle struct {
	props map[string]Value

	// FontSize is the element's resolved font size in px, computed
	// top-down alongside the cascade so em values can resolve here.
	FontSize float64

	rootFontSize float64
}

// Value returns the resolved value of a property. Unsupported property
// names return the zero keyword value.
func (cs *ComputedStyle) Value(property string) Value {
	if v, ok := cs.props[property]; ok {
		return v
	}
	if v, ok := initialValues[property]; ok {
		return v
	}
	return Value{}
}

// inheritedProperties lists the supported properties that pass from parent
// to child when no declaration wins.
var inheritedProperties = map[string]bool{
	"color":       true,
	"font-size":   true,
	"font-family": true,
	"font-weight": true,
	"font-style":  true,
	"line-height": true,
	"text-align":  true,
}

// initialValues defines the supported property set and each property's
// initial value. Resolve populates every one of these keys.
var initialValues = map[string]Value{
	"display":          Keyword("inline"),
	"position":         Keyword("static"),
	"top":              Keyword("auto"),
	"right":            Keyword("auto"),
	"bottom":           Keyword("auto"),
	"left":             Keyword("auto"),
	"z-index":          Keyword("auto"),
	"width":            Keyword("auto"),
	"height":           Keyword("auto"),
	"min-width":        Px(0),
	"min-height":       Px(0),
	"max-width":        Keyword("none"),
	"max-height":       Keyword("none"),
	"margin-top":       Px(0),
	"margin-right":     Px(0),
	"margin-bottom":    Px(0),
	"margin-left":      Px(0),
	"padding-top":      Px(0),
	"padding-right":    Px(0),
	"padding-bottom":   Px(0),
	"padding-left":     Px(0),

	"border-top-width":    Px(0),
	"border-right-width":  Px(0),
	"border-bottom-width": Px(0),
	"border-left-width":   Px(0),
	"border-color":        Keyword("currentColor"),
	"border-style":        Keyword("none"),

	"color":            ColorOf(0, 0, 0, 255),
	"background-color": ColorOf(0, 0, 0, 0),
	"opacity":          Number(1),
	"transform":        Keyword("none"),
	"overflow":         Keyword("visible"),

	"font-size":   Px(DefaultFontSize),
	"font-family": Keyword("sans-serif"),
	"font-weight": Keyword("normal"),
	"font-style":  Keyword("normal"),
	"line-height": Keyword("normal"),
	"text-align":  Keyword("left"),

	"flex-direction":  Keyword("row"),
	"flex-wrap":       Keyword("nowrap"),
	"flex-grow":       Number(0),
	"flex-shrink":     Number(1),
	"flex-basis":      Keyword("auto"),
	"justify-content": Keyword("flex-start"),
	"align-items":     Keyword("stretch"),
	"align-self":      Keyword("auto"),
	"align-content":   Keyword("stretch"),
	"order":           Number(0),
	"row-gap":         Px(0),
	"column-gap":      Px(0),

	"grid-template-columns": Keyword("none"),
	"grid-template-rows":    Keyword("none"),
	"grid-auto-flow":        Keyword("row"),
	"grid-auto-rows":        Keyword("auto"),
	"grid-auto-columns":     Keyword("auto"),
	"grid-column-start":     Keyword("auto"),
	"grid-column-end":       Keyword("auto"),
	"grid-row-start":        Keyword("auto"),
	"grid-row-end":          Keyword("auto"),
	"justify-items":         Keyword("stretch"),
	"justify-self":          Keyword("auto"),
}

// matchedDeclaration carries the cascade sort key for one declaration.
type matchedDeclaration struct {
	decl        Declaration
	specificity Specificity
	sourceOrder int
	declIndex   int
	inline      bool
}

// Resolve computes an element's style from the rules that match it plus
// inheritance from the parent's computed style. The cascade order is:
// importance, then specificity, then source order, later always winning.
func Resolve(node *dom.Node, parent *ComputedStyle, rules []StyleRule) *ComputedStyle {
	var matched []matchedDeclaration
	for _, rule := range rules {
		if !Matches(rule.Selector, node) {
			continue
		}
		for i, decl := range rule.Declarations {
			matched = append(matched, matchedDeclaration{
				decl:        decl,
				specificity: rule.Selector.Specificity(),
				sourceOrder: rule.SourceOrder,
				declIndex:   i,
			})
		}
	}

	// The style attribute outranks any selector of the same importance.
	if styleAttr, ok := node.GetAttribute("style"); ok {
		for i, decl := range ParseDeclarations(styleAttr) {
			matched = append(matched, matchedDeclaration{
				decl:      decl,
				declIndex: i,
				inline:    true,
			})
		}
	}

	// Ascending sort, applied in order: the last writer for a property is
	// the cascade winner.
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.decl.Important != b.decl.Important {
			return !a.decl.Important
		}
		if a.inline != b.inline {
			return !a.inline
		}
		if cmp := a.specificity.Compare(b.specificity); cmp != 0 {
			return cmp < 0
		}
		if a.sourceOrder != b.sourceOrder {
			return a.sourceOrder < b.sourceOrder
		}
		return a.declIndex < b.declIndex
	})

	applied := make(map[string]Value, len(matched))
	for _, m := range matched {
		if !validDeclaration(m.decl.Property, m.decl.Value) {
			// A bad value drops that one declaration only.
			continue
		}
		applied[m.decl.Property] = m.decl.Value
	}

	cs := &ComputedStyle{props: make(map[string]Value, len(initialValues))}

	// Font size resolves first so em lengths below have an anchor.
	parentFont := DefaultFontSize
	rootFont := DefaultFontSize
	if parent != nil {
		parentFont = parent.FontSize
		rootFont = parent.rootFontSize
	}
	cs.FontSize = resolveFontSize(applied, parent, parentFont, rootFont)
	if parent == nil {
		rootFont = cs.FontSize
	}
	cs.rootFontSize = rootFont

	for property := range initialValues {
		v, ok := applied[property]
		if !ok {
			if inheritedProperties[property] && parent != nil {
				v = parent.Value(property)
			} else {
				v = initialValues[property]
			}
		}
		cs.props[property] = absolutizeLength(v, cs.FontSize, rootFont)
	}
	cs.props["font-size"] = Px(cs.FontSize)

	return cs
}

func resolveFontSize(applied map[string]Value, parent *ComputedStyle, parentFont, rootFont float64) float64 {
	v, ok := applied["font-size"]
	if !ok {
		if parent != nil {
			return parent.FontSize
		}
		return DefaultFontSize
	}
	switch v.Kind {
	case LengthValue:
		switch v.Unit {
		case UnitEm:
			return v.Length * parentFont
		case UnitRem:
			return v.Length * rootFont
		}
		return v.Length
	case PercentValue:
		return v.Percent / 100 * parentFont
	case NumberValue:
		return v.Number
	}
	return parentFont
}

// absolutizeLength converts font-relative lengths to px. Percentages are
// left alone: they resolve against the containing block during layout.
func absolutizeLength(v Value, fontSize, rootFont float64) Value {
	if v.Kind != LengthValue {
		return v
	}
	switch v.Unit {
	case UnitEm:
		return Px(v.Length * fontSize)
	case UnitRem:
		return Px(v.Length * rootFont)
	}
	return v
}

// validDeclaration rejects values that make no sense for the property.
// Rejection drops the single declaration; the rest of the rule stands.
func validDeclaration(property string, v Value) bool {
	if _, supported := initialValues[property]; !supported {
		return false
	}
	switch property {
	case "width", "height", "flex-basis",
		"min-width", "min-height", "max-width", "max-height",
		"padding-top", "padding-right", "padding-bottom", "padding-left",
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
		"row-gap", "column-gap", "font-size":
		// Sizes cannot be negative.
		if v.Kind == LengthValue && v.Length < 0 {
			return false
		}
		if v.Kind == PercentValue && v.Percent < 0 {
			return false
		}
	case "flex-grow", "flex-shrink":
		if v.Kind != NumberValue || v.Number < 0 {
			return false
		}
	case "opacity":
		if v.Kind != NumberValue {
			return false
		}
	case "order":
		if v.Kind != NumberValue {
			return false
		}
	case "z-index":
		if v.Kind != NumberValue && !v.IsAuto() {
			return false
		}
	case "color", "background-color":
		if v.Kind != ColorValue && v.Kind != KeywordValue {
			return false
		}
	}
	return true
}
