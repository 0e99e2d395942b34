package css

import "kestrel/pkg/dom"

// StyledNode pairs a borrowed document node with its computed style. The
// children slice is owned; the document node is not.
type StyledNode struct {
	Node     *dom.Node
	Style    *ComputedStyle
	Children []*StyledNode
}

// IsText reports whether the styled node wraps a text node.
func (sn *StyledNode) IsText() bool {
	return sn.Node != nil && sn.Node.Type == dom.TextNode
}

// BuildStyleTree resolves the cascade over the whole document, producing a
// styled tree that mirrors it. Text nodes share their parent's computed
// style, which carries the inherited font and text properties measurement
// needs later.
func BuildStyleTree(root *dom.Node, rules []StyleRule) *StyledNode {
	return styleNode(root, nil, rules)
}

func styleNode(node *dom.Node, parent *ComputedStyle, rules []StyleRule) *StyledNode {
	sn := &StyledNode{Node: node}
	if node.Type == dom.TextNode {
		sn.Style = parent
		if sn.Style == nil {
			sn.Style = Resolve(node, nil, nil)
		}
		return sn
	}

	sn.Style = Resolve(node, parent, rules)
	for _, child := range node.Children {
		sn.Children = append(sn.Children, styleNode(child, sn.Style, rules))
	}
	return sn
}

// userAgentCSS is the compact default sheet applied below author rules.
// Author rules always beat it because it is prepended with the lowest
// source-order positions.
const userAgentCSS = `
html, body, div, p, section, article, header, footer, nav, aside, main,
h1, h2, h3, h4, h5, h6, ul, ol, li, form, table, pre, blockquote, figure {
	display: block;
}
body { margin: 8px; }
h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; font-weight: bold; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; font-weight: bold; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; font-weight: bold; }
p { margin-top: 1em; margin-bottom: 1em; }
b, strong { font-weight: bold; }
i, em { font-style: italic; }
a { color: #0645ad; }
`

// DefaultUserAgentRules returns the built-in user-agent rules.
func DefaultUserAgentRules() []StyleRule {
	return ParseRules(userAgentCSS)
}

// CascadeRules prepends the user-agent rules to the author rules and
// renumbers source order so the combined slice is a valid cascade input.
func CascadeRules(author []StyleRule) []StyleRule {
	ua := DefaultUserAgentRules()
	combined := make([]StyleRule, 0, len(ua)+len(author))
	combined = append(combined, ua...)
	combined = append(combined, author...)
	for i := range combined {
		combined[i].SourceOrder = i
	}
	return combined
}
