package dom

import (
	"testing"
)

func TestParseStringBuildsBody(t *testing.T) {
	doc, err := ParseString(`<html><body><div id="a"><p>hi</p></div></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root.TagName != "body" {
		t.Fatalf("root = %q, want body", doc.Root.TagName)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("body children = %d, want 1", len(doc.Root.Children))
	}
	div := doc.Root.Children[0]
	if div.TagName != "div" || div.ID() != "a" {
		t.Errorf("child = <%s id=%q>", div.TagName, div.ID())
	}
	p := div.Children[0]
	if p.TagName != "p" || len(p.Children) != 1 || p.Children[0].Text != "hi" {
		t.Errorf("unexpected paragraph shape: %+v", p)
	}
}

func TestParseCollectsStylesheets(t *testing.T) {
	doc, err := ParseString(`<html><head><style>p { color: red }</style></head><body><p>x</p></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Stylesheets) != 1 {
		t.Fatalf("stylesheets = %d, want 1", len(doc.Stylesheets))
	}
	if doc.Stylesheets[0] != "p { color: red }" {
		t.Errorf("stylesheet = %q", doc.Stylesheets[0])
	}
}

func TestParseSkipsScriptsAndWhitespace(t *testing.T) {
	doc, err := ParseString(`<body>
		<script>alert(1)</script>
		<div>text</div>
	</body>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Root.Children) != 1 {
		t.Fatalf("children = %d, want only the div", len(doc.Root.Children))
	}
	if doc.Root.Children[0].TagName != "div" {
		t.Errorf("child = %q", doc.Root.Children[0].TagName)
	}
}

func TestClassesAndSiblings(t *testing.T) {
	parent := NewElement("ul", nil)
	a := NewElement("li", map[string]string{"class": "one two"})
	b := NewElement("li", nil)
	parent.AddChild(a)
	parent.AddChild(NewText("between"))
	parent.AddChild(b)

	if !a.HasClass("two") || a.HasClass("three") {
		t.Error("class lookup broken")
	}
	if b.PreviousElementSibling() != a {
		t.Error("PreviousElementSibling must skip text nodes")
	}
	if a.PreviousElementSibling() != nil {
		t.Error("first element has no previous sibling")
	}
}
