package css

import (
	"strings"

	"kestrel/pkg/dom"
)

// Matches reports whether the node satisfies the selector. Matching starts
// at the subject compound and walks the combinator chain outward toward the
// root. A non-match is an ordinary false, never an error.
func Matches(sel Selector, node *dom.Node) bool {
	if node == nil || node.Type != dom.ElementNode {
		return false
	}
	if len(sel.Parts) == 0 {
		return false
	}
	return matchesAt(sel, node, len(sel.Parts)-1)
}

func matchesAt(sel Selector, node *dom.Node, partIndex int) bool {
	if !matchesPart(sel.Parts[partIndex], node) {
		return false
	}
	if partIndex == 0 {
		return true
	}

	switch sel.Combinators[partIndex-1] {
	case DescendantCombinator:
		for anc := node.Parent; anc != nil; anc = anc.Parent {
			if anc.Type == dom.ElementNode && matchesAt(sel, anc, partIndex-1) {
				return true
			}
		}
	case ChildCombinator:
		if node.Parent != nil && node.Parent.Type == dom.ElementNode {
			return matchesAt(sel, node.Parent, partIndex-1)
		}
	case AdjacentSiblingCombinator:
		if prev := node.PreviousElementSibling(); prev != nil {
			return matchesAt(sel, prev, partIndex-1)
		}
	case GeneralSiblingCombinator:
		for prev := node.PreviousElementSibling(); prev != nil; prev = prev.PreviousElementSibling() {
			if matchesAt(sel, prev, partIndex-1) {
				return true
			}
		}
	}
	return false
}

func matchesPart(part SelectorPart, node *dom.Node) bool {
	if part.Tag != "" && part.Tag != "*" && part.Tag != node.TagName {
		return false
	}
	if part.ID != "" && node.ID() != part.ID {
		return false
	}
	for _, class := range part.Classes {
		if !node.HasClass(class) {
			return false
		}
	}
	for _, attr := range part.Attributes {
		if !matchesAttribute(attr, node) {
			return false
		}
	}
	// Only structural matching is supported; dynamic and unknown
	// pseudo-classes never match rather than failing the selector.
	for _, pc := range part.PseudoClasses {
		switch pc {
		case "root":
			if node.Parent != nil {
				return false
			}
		case "first-child":
			if firstElementChild(node.Parent) != node {
				return false
			}
		case "last-child":
			if lastElementChild(node.Parent) != node {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func matchesAttribute(attr AttributeSelector, node *dom.Node) bool {
	value, ok := node.GetAttribute(attr.Name)
	if !ok {
		return false
	}
	switch attr.Operator {
	case "":
		return true
	case "=":
		return value == attr.Value
	case "^=":
		return strings.HasPrefix(value, attr.Value)
	case "$=":
		return strings.HasSuffix(value, attr.Value)
	case "*=":
		return strings.Contains(value, attr.Value)
	case "~=":
		for _, word := range strings.Fields(value) {
			if word == attr.Value {
				return true
			}
		}
	case "|=":
		return value == attr.Value || strings.HasPrefix(value, attr.Value+"-")
	}
	return false
}

func firstElementChild(parent *dom.Node) *dom.Node {
	if parent == nil {
		return nil
	}
	for _, c := range parent.Children {
		if c.Type == dom.ElementNode {
			return c
		}
	}
	return nil
}

func lastElementChild(parent *dom.Node) *dom.Node {
	if parent == nil {
		return nil
	}
	for i := len(parent.Children) - 1; i >= 0; i-- {
		if parent.Children[i].Type == dom.ElementNode {
			return parent.Children[i]
		}
	}
	return nil
}
