package layout

import (
	"testing"
)

// The fixed measurer makes inline geometry exact: 8px per character and
// 19.2px line height at the default 16px font.

func TestInlineWrapping(t *testing.T) {
	root, _ := layoutHTML(t, `<body>aaaa bbbb cccc</body>`,
		`body { width: 100px }`)

	// "aaaa bbbb" is 72px and fits; adding " cccc" would need 112px.
	if len(root.Children) != 2 {
		t.Fatalf("fragments = %d, want 2", len(root.Children))
	}
	first, second := root.Children[0], root.Children[1]
	if first.Text != "aaaa bbbb" || second.Text != "cccc" {
		t.Fatalf("fragments = %q, %q", first.Text, second.Text)
	}
	approx(t, first.Dims.Content.Width, 72, "first line width")
	approx(t, first.Dims.Content.Y, 0, "first line y")
	approx(t, second.Dims.Content.Y, 19.2, "second line y")
	approx(t, root.Dims.Content.Height, 38.4, "container height")
}

func TestInlineOverlongWordOverflows(t *testing.T) {
	root, _ := layoutHTML(t, `<body>aaaaaaaaaaaaaaaaaaaa bb</body>`,
		`body { width: 100px }`)
	// The 160px word keeps a line of its own and overflows; the next
	// word starts a fresh line.
	if len(root.Children) != 2 {
		t.Fatalf("fragments = %d, want 2", len(root.Children))
	}
	approx(t, root.Children[0].Dims.Content.Width, 160, "overlong word width")
	approx(t, root.Children[1].Dims.Content.Y, 19.2, "next word wraps")
}

func TestTextAlign(t *testing.T) {
	tests := []struct {
		align string
		wantX float64
	}{
		{"left", 0},
		{"center", 42}, // (100 - 16) / 2
		{"right", 84},
	}
	for _, tc := range tests {
		root, _ := layoutHTML(t, `<body>aa</body>`,
			`body { width: 100px; text-align: `+tc.align+` }`)
		if len(root.Children) != 1 {
			t.Fatalf("%s: fragments = %d", tc.align, len(root.Children))
		}
		approx(t, root.Children[0].Dims.Content.X, tc.wantX, tc.align+" x")
	}
}

func TestInlineBlockPlacedOnLine(t *testing.T) {
	root, _ := layoutHTML(t, `<body>aaaa <span id="ib">x</span></body>`,
		`body { width: 200px }
		 #ib { display: inline-block; width: 30px; height: 30px }`)

	ib := findID(root, "ib")
	if ib == nil {
		t.Fatal("inline-block box missing")
	}
	// After the 32px word and an 8px space.
	approx(t, ib.Dims.Content.X, 40, "inline-block x")
	approx(t, ib.Dims.Content.Y, 0, "inline-block top-aligns with the 30px line")
	approx(t, root.Dims.Content.Height, 30, "line height grows to the tallest item")

	// The word bottom-aligns to the line.
	word := root.Children[0]
	if word.Type != TextRunBox {
		t.Fatalf("first child is %s, want text", word.Type)
	}
	approx(t, word.Dims.Content.Y, 30-19.2, "word baseline offset")
}

func TestInlineSpanStyleReachesFragments(t *testing.T) {
	root, _ := layoutHTML(t, `<body><span id="s">word</span></body>`,
		`#s { font-size: 32px }`)
	if len(root.Children) != 1 {
		t.Fatalf("fragments = %d, want 1", len(root.Children))
	}
	// 4 characters at 16px advance (half of 32px).
	approx(t, root.Children[0].Dims.Content.Width, 64, "fragment width")
}

func TestAnonymousBlockWrapping(t *testing.T) {
	root, _ := layoutHTML(t, `<body>hello<p id="p">para</p>world</body>`, "p { margin: 0 }")
	if len(root.Children) != 3 {
		t.Fatalf("children = %d, want anon, block, anon", len(root.Children))
	}
	if root.Children[0].Type != AnonymousBlockBox {
		t.Errorf("first child = %s, want anonymous", root.Children[0].Type)
	}
	if root.Children[1].Type != BlockBox {
		t.Errorf("second child = %s, want block", root.Children[1].Type)
	}
	if root.Children[2].Type != AnonymousBlockBox {
		t.Errorf("third child = %s, want anonymous", root.Children[2].Type)
	}
	// The trailing run sits below the paragraph.
	p := findID(root, "p")
	after := root.Children[2]
	if after.Dims.Content.Y < p.Dims.BorderBox().Y+p.Dims.BorderBox().Height {
		t.Error("trailing anonymous block must stack below the paragraph")
	}
}

func TestDisplayNoneGeneratesNoBox(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="x" style="display: none"><p>gone</p></div><div id="y"></div></body>`, "")
	if findID(root, "x") != nil {
		t.Error("display:none subtree must generate no boxes")
	}
	y := findID(root, "y")
	approx(t, y.Dims.Content.Y, 0, "sibling unaffected by none box")
}
