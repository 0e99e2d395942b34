// Package dom holds the input document tree consumed by styling and layout.
// The tree is built by a markup-parsing collaborator (see Parse) and is
// treated as read-only by everything downstream.
package dom

import "strings"

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a single document-tree node. Element nodes carry a tag name and
// attributes; text nodes carry literal text.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

// NewElement builds an element node. Handy for constructing trees in tests.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{
		Type:       ElementNode,
		TagName:    tag,
		Attributes: attrs,
	}
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	for _, c := range children {
		n.AddChild(c)
	}
	return n
}

// NewText builds a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// AddChild appends child and sets its parent pointer.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// ID returns the element's id attribute, or "".
func (n *Node) ID() string {
	id, _ := n.GetAttribute("id")
	return id
}

// Classes returns the whitespace-separated class list.
func (n *Node) Classes() []string {
	class, ok := n.GetAttribute("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

// HasClass reports whether the element carries the given class.
func (n *Node) HasClass(name string) bool {
	for _, c := range n.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// PreviousElementSibling returns the nearest preceding element sibling, or nil.
func (n *Node) PreviousElementSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	var prev *Node
	for _, sibling := range n.Parent.Children {
		if sibling == n {
			return prev
		}
		if sibling.Type == ElementNode {
			prev = sibling
		}
	}
	return nil
}
