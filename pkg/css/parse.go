package css

import (
	"strings"
)

// This file is a small stand-in for the stylesheet-parsing collaborator:
// it turns selector and declaration text into the typed rule objects the
// cascade consumes. The core itself only ever sees []StyleRule.

// ParseRules parses stylesheet text into rules. Malformed rules are
// skipped, malformed declarations dropped individually.
func ParseRules(text string) []StyleRule {
	text = stripComments(text)

	var rules []StyleRule
	order := 0
	depth := 0
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				chunk := text[start : i+1]
				start = i + 1
				brace := strings.Index(chunk, "{")
				if brace < 0 {
					continue
				}
				decls := ParseDeclarations(chunk[brace+1 : len(chunk)-1])
				if len(decls) == 0 {
					continue
				}
				// A comma-separated selector list becomes one rule
				// per selector, sharing the declarations.
				for _, selText := range strings.Split(chunk[:brace], ",") {
					sel, ok := ParseSelector(selText)
					if !ok {
						continue
					}
					rules = append(rules, StyleRule{
						Selector:     sel,
						Declarations: decls,
						SourceOrder:  order,
					})
					order++
				}
			}
		}
	}
	return rules
}

func stripComments(text string) string {
	for {
		open := strings.Index(text, "/*")
		if open < 0 {
			return text
		}
		close := strings.Index(text[open+2:], "*/")
		if close < 0 {
			return text[:open]
		}
		text = text[:open] + " " + text[open+2+close+2:]
	}
}

// ParseSelector parses a single complex selector (no commas).
func ParseSelector(text string) (Selector, bool) {
	tokens := selectorTokens(text)
	if len(tokens) == 0 {
		return Selector{}, false
	}

	var sel Selector
	pending := DescendantCombinator
	havePart := false
	for _, tok := range tokens {
		switch tok {
		case ">":
			pending = ChildCombinator
		case "+":
			pending = AdjacentSiblingCombinator
		case "~":
			pending = GeneralSiblingCombinator
		default:
			part, ok := parseCompound(tok)
			if !ok {
				return Selector{}, false
			}
			if havePart {
				sel.Combinators = append(sel.Combinators, pending)
			}
			sel.Parts = append(sel.Parts, part)
			pending = DescendantCombinator
			havePart = true
		}
	}
	if !havePart || len(sel.Combinators) != len(sel.Parts)-1 {
		return Selector{}, false
	}
	return sel, true
}

// selectorTokens splits a selector into compound and combinator tokens.
// Combinators only count outside attribute brackets, so [class~=x] stays
// one token.
func selectorTokens(text string) []string {
	var tokens []string
	start := -1
	inAttr := false
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, text[start:end])
			start = -1
		}
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '[':
			inAttr = true
		case c == ']':
			inAttr = false
		case !inAttr && (c == ' ' || c == '\t' || c == '\n'):
			flush(i)
			continue
		case !inAttr && (c == '>' || c == '+' || c == '~'):
			flush(i)
			tokens = append(tokens, string(c))
			continue
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(text))
	return tokens
}

func parseCompound(text string) (SelectorPart, bool) {
	var part SelectorPart
	i := 0
	// Leading tag or universal selector.
	for i < len(text) && text[i] != '#' && text[i] != '.' && text[i] != '[' && text[i] != ':' {
		i++
	}
	if i > 0 {
		part.Tag = strings.ToLower(text[:i])
	}
	for i < len(text) {
		switch text[i] {
		case '#':
			j := simpleEnd(text, i+1)
			if j == i+1 {
				return part, false
			}
			part.ID = text[i+1 : j]
			i = j
		case '.':
			j := simpleEnd(text, i+1)
			if j == i+1 {
				return part, false
			}
			part.Classes = append(part.Classes, text[i+1:j])
			i = j
		case '[':
			j := strings.IndexByte(text[i:], ']')
			if j < 0 {
				return part, false
			}
			attr, ok := parseAttribute(text[i+1 : i+j])
			if !ok {
				return part, false
			}
			part.Attributes = append(part.Attributes, attr)
			i += j + 1
		case ':':
			// "::" pseudo-elements parse as a pseudo-class the matcher
			// will never match.
			start := i + 1
			if start < len(text) && text[start] == ':' {
				start++
			}
			j := simpleEnd(text, start)
			if j == start {
				return part, false
			}
			part.PseudoClasses = append(part.PseudoClasses, text[start:j])
			i = j
		default:
			return part, false
		}
	}
	return part, true
}

func simpleEnd(text string, from int) int {
	i := from
	for i < len(text) {
		c := text[i]
		if c == '#' || c == '.' || c == '[' || c == ':' {
			break
		}
		i++
	}
	return i
}

func parseAttribute(text string) (AttributeSelector, bool) {
	text = strings.TrimSpace(text)
	for _, op := range []string{"^=", "$=", "*=", "~=", "|=", "="} {
		if idx := strings.Index(text, op); idx >= 0 {
			value := strings.Trim(strings.TrimSpace(text[idx+len(op):]), `"'`)
			return AttributeSelector{
				Name:     strings.TrimSpace(text[:idx]),
				Operator: op,
				Value:    value,
			}, text[:idx] != ""
		}
	}
	return AttributeSelector{Name: text}, text != ""
}

// ParseDeclarations parses "prop: value; prop: value !important" text. It
// expands shorthands so the cascade only ever stores longhands.
func ParseDeclarations(text string) []Declaration {
	var decls []Declaration
	for _, piece := range strings.Split(text, ";") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		colon := strings.Index(piece, ":")
		if colon < 0 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(piece[:colon]))
		raw := strings.TrimSpace(piece[colon+1:])

		important := false
		if lower := strings.ToLower(raw); strings.HasSuffix(lower, "!important") {
			important = true
			raw = strings.TrimSpace(raw[:len(raw)-len("!important")])
		}
		if property == "" || raw == "" {
			continue
		}
		for _, d := range expandShorthand(property, raw) {
			d.Important = important
			decls = append(decls, d)
		}
	}
	return decls
}

func expandShorthand(property, raw string) []Declaration {
	switch property {
	case "margin", "padding":
		return expandBox(property, raw)
	case "border-width":
		return expandBox("border", raw, "-width")
	case "border":
		return expandBorder(raw)
	case "gap":
		return expandGap(raw)
	case "flex":
		return expandFlex(raw)
	case "grid-column", "grid-row":
		return expandGridLine(property, raw)
	}
	v, ok := ParseValue(raw)
	if !ok {
		return nil
	}
	return []Declaration{{Property: property, Value: v}}
}

// expandBox maps 1-4 values onto the top/right/bottom/left longhands.
func expandBox(prefix, raw string, suffix ...string) []Declaration {
	suf := ""
	if len(suffix) > 0 {
		suf = suffix[0]
	}
	parts := strings.Fields(raw)
	var top, right, bottom, left string
	switch len(parts) {
	case 1:
		top, right, bottom, left = parts[0], parts[0], parts[0], parts[0]
	case 2:
		top, right, bottom, left = parts[0], parts[1], parts[0], parts[1]
	case 3:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[1]
	case 4:
		top, right, bottom, left = parts[0], parts[1], parts[2], parts[3]
	default:
		return nil
	}
	var decls []Declaration
	for _, side := range []struct{ name, raw string }{
		{prefix + "-top" + suf, top},
		{prefix + "-right" + suf, right},
		{prefix + "-bottom" + suf, bottom},
		{prefix + "-left" + suf, left},
	} {
		if v, ok := ParseValue(side.raw); ok {
			decls = append(decls, Declaration{Property: side.name, Value: v})
		}
	}
	return decls
}

func expandBorder(raw string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Fields(raw) {
		v, ok := ParseValue(part)
		if !ok {
			continue
		}
		switch {
		case v.Kind == LengthValue:
			decls = append(decls, expandBox("border", part, "-width")...)
		case v.Kind == ColorValue:
			decls = append(decls, Declaration{Property: "border-color", Value: v})
		default:
			decls = append(decls, Declaration{Property: "border-style", Value: v})
		}
	}
	return decls
}

func expandGap(raw string) []Declaration {
	parts := strings.Fields(raw)
	if len(parts) == 0 || len(parts) > 2 {
		return nil
	}
	row, ok := ParseValue(parts[0])
	if !ok {
		return nil
	}
	col := row
	if len(parts) == 2 {
		if col, ok = ParseValue(parts[1]); !ok {
			return nil
		}
	}
	return []Declaration{
		{Property: "row-gap", Value: row},
		{Property: "column-gap", Value: col},
	}
}

// expandFlex handles "flex: <grow> [<shrink>] [<basis>]" plus the keyword
// forms none/auto/initial.
func expandFlex(raw string) []Declaration {
	mk := func(grow, shrink float64, basis Value) []Declaration {
		return []Declaration{
			{Property: "flex-grow", Value: Number(grow)},
			{Property: "flex-shrink", Value: Number(shrink)},
			{Property: "flex-basis", Value: basis},
		}
	}
	switch strings.TrimSpace(raw) {
	case "none":
		return mk(0, 0, Keyword("auto"))
	case "auto":
		return mk(1, 1, Keyword("auto"))
	case "initial":
		return mk(0, 1, Keyword("auto"))
	}

	parts := strings.Fields(raw)
	grow := 1.0
	shrink := 1.0
	basis := Px(0)
	seen := 0
	for _, part := range parts {
		v, ok := ParseValue(part)
		if !ok {
			return nil
		}
		switch {
		case v.Kind == NumberValue && seen == 0:
			grow = v.Number
			seen++
		case v.Kind == NumberValue && seen == 1:
			shrink = v.Number
			seen++
		case v.Kind == LengthValue || v.Kind == PercentValue || v.IsAuto():
			basis = v
		default:
			return nil
		}
	}
	return mk(grow, shrink, basis)
}

// expandGridLine handles "grid-column: 1 / 3" and "grid-row: 2 / span 2".
func expandGridLine(property, raw string) []Declaration {
	parts := strings.SplitN(raw, "/", 2)
	start := strings.TrimSpace(parts[0])
	end := "auto"
	if len(parts) == 2 {
		end = strings.TrimSpace(parts[1])
	}
	sv, ok1 := ParseValue(start)
	ev, ok2 := ParseValue(end)
	if !ok1 || !ok2 {
		return nil
	}
	return []Declaration{
		{Property: property + "-start", Value: sv},
		{Property: property + "-end", Value: ev},
	}
}
