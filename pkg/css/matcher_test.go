package css

import (
	"testing"

	"kestrel/pkg/dom"
)

// buildDoc returns a small tree:
//
//	<div id="root" class="page">
//	  <p class="intro first"><span>..</span></p>
//	  <p data-kind="note">..</p>
//	  <ul><li>..</li><li class="last">..</li></ul>
//	</div>
func buildDoc() (root, intro, note, span, li1, li2 *dom.Node) {
	root = dom.NewElement("div", map[string]string{"id": "root", "class": "page"})
	intro = dom.NewElement("p", map[string]string{"class": "intro first"})
	span = dom.NewElement("span", nil)
	intro.AddChild(span)
	note = dom.NewElement("p", map[string]string{"data-kind": "note"})
	ul := dom.NewElement("ul", nil)
	li1 = dom.NewElement("li", nil)
	li2 = dom.NewElement("li", map[string]string{"class": "last"})
	ul.AddChild(li1)
	ul.AddChild(li2)
	root.AddChild(intro)
	root.AddChild(note)
	root.AddChild(ul)
	return
}

func mustSelector(t *testing.T, text string) Selector {
	t.Helper()
	sel, ok := ParseSelector(text)
	if !ok {
		t.Fatalf("selector %q did not parse", text)
	}
	return sel
}

func TestMatches(t *testing.T) {
	root, intro, note, span, li1, li2 := buildDoc()

	tests := []struct {
		selector string
		node     *dom.Node
		want     bool
	}{
		{"p", intro, true},
		{"p", span, false},
		{"*", span, true},
		{".intro", intro, true},
		{".intro.first", intro, true},
		{".intro.missing", intro, false},
		{"#root", root, true},
		{"#other", root, false},
		{"div span", span, true},
		{"div > span", span, false},
		{"p > span", span, true},
		{"p + p", note, true},
		{"p + p", intro, false},
		{"p ~ ul", note.Parent.Children[2], true},
		{"[data-kind]", note, true},
		{"[data-kind=note]", note, true},
		{"[data-kind=other]", note, false},
		{"[class~=first]", intro, true},
		{"[class^=in]", intro, true},
		{"[class$=st]", intro, true},
		{"[class*=ntr]", intro, true},
		{":root", root, true},
		{":root", intro, false},
		{"li:first-child", li1, true},
		{"li:first-child", li2, false},
		{"li:last-child", li2, true},
		{"p:hover", intro, false}, // dynamic pseudo-classes never match
	}
	for _, tc := range tests {
		sel := mustSelector(t, tc.selector)
		if got := Matches(sel, tc.node); got != tc.want {
			t.Errorf("Matches(%q, <%s>) = %v, want %v", tc.selector, tc.node.TagName, got, tc.want)
		}
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		selector string
		want     Specificity
	}{
		{"div", Specificity{0, 0, 1}},
		{".btn", Specificity{0, 1, 0}},
		{"#submit", Specificity{1, 0, 0}},
		{"div.btn", Specificity{0, 1, 1}},
		{"ul li .item", Specificity{0, 1, 2}},
		{"#a .b c[d]:first-child", Specificity{1, 3, 1}},
		{"*", Specificity{0, 0, 0}},
	}
	for _, tc := range tests {
		sel := mustSelector(t, tc.selector)
		if got := sel.Specificity(); got != tc.want {
			t.Errorf("Specificity(%q) = %v, want %v", tc.selector, got, tc.want)
		}
	}
}

func TestSpecificityCompare(t *testing.T) {
	id := Specificity{1, 0, 0}
	manyClasses := Specificity{0, 11, 0}
	if id.Compare(manyClasses) <= 0 {
		t.Error("one id must outweigh any number of classes")
	}
	if manyClasses.Compare(manyClasses) != 0 {
		t.Error("equal specificities must compare equal")
	}
}
