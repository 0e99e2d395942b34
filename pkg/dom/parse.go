package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document pairs a parsed tree with the raw stylesheet text found in it.
// Stylesheet parsing itself happens elsewhere; the document only carries
// the text along.
type Document struct {
	Root        *Node
	Stylesheets []string
}

// Parse reads HTML and converts the golang.org/x/net/html tree into the
// engine's node type. Script, head metadata and comments are dropped;
// <style> contents are collected onto the Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{}
	body := findBody(root)
	if body == nil {
		body = root
	}

	doc.Root = &Node{
		Type:       ElementNode,
		TagName:    "body",
		Attributes: attrMap(body),
	}
	convertChildren(body, doc.Root, doc)
	collectStyles(root, doc)
	return doc, nil
}

// ParseString is Parse over a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func convertChildren(src *html.Node, dst *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			switch c.Data {
			case "script", "style", "head", "title", "meta", "link":
				continue
			}
			el := &Node{
				Type:       ElementNode,
				TagName:    c.Data,
				Attributes: attrMap(c),
			}
			dst.AddChild(el)
			convertChildren(c, el, doc)
		case html.TextNode:
			// Whitespace-only runs between blocks carry no content.
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			dst.AddChild(NewText(c.Data))
		}
	}
}

func collectStyles(n *html.Node, doc *Document) {
	if n.Type == html.ElementNode && n.Data == "style" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		if sb.Len() > 0 {
			doc.Stylesheets = append(doc.Stylesheets, sb.String())
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyles(c, doc)
	}
}

func attrMap(n *html.Node) map[string]string {
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}
