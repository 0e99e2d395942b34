package layout

import (
	"testing"
)

func paintIndex(order []*Box, b *Box) int {
	for i, box := range order {
		if box == b {
			return i
		}
	}
	return -1
}

func TestPaintOrderNegativeFlowPositive(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body><div id="n"></div><div id="m"></div><div id="p"></div></body>`,
		`#n { position: relative; z-index: -1 }
		 #p { position: relative; z-index: 2 }`)

	order := stacking.PaintOrder()
	n := paintIndex(order, findID(root, "n"))
	m := paintIndex(order, findID(root, "m"))
	p := paintIndex(order, findID(root, "p"))
	if n < 0 || m < 0 || p < 0 {
		t.Fatal("paint order missing boxes")
	}
	if !(n < m && m < p) {
		t.Errorf("paint order = n:%d m:%d p:%d, want negative < flow < positive", n, m, p)
	}
	if order[0] != root {
		t.Error("the context's own box paints first")
	}
}

func TestPaintOrderZIndexSorts(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body><div id="a"></div><div id="b"></div><div id="c2"></div></body>`,
		`#a { position: relative; z-index: 3 }
		 #b { position: relative; z-index: 1 }
		 #c2 { position: relative; z-index: 2 }`)
	order := stacking.PaintOrder()
	a := paintIndex(order, findID(root, "a"))
	b := paintIndex(order, findID(root, "b"))
	c := paintIndex(order, findID(root, "c2"))
	if !(b < c && c < a) {
		t.Errorf("z-index must sort ascending, got a:%d b:%d c:%d", a, b, c)
	}
}

func TestEqualZIndexKeepsSourceOrder(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body><div id="a"></div><div id="b"></div></body>`,
		`#a, #b { position: relative; z-index: 1 }`)
	order := stacking.PaintOrder()
	if !(paintIndex(order, findID(root, "a")) < paintIndex(order, findID(root, "b"))) {
		t.Error("equal z-indices must keep source order")
	}
}

func TestZIndexIgnoredOnStaticBoxes(t *testing.T) {
	_, stacking := layoutHTML(t,
		`<body><div id="a"></div></body>`,
		`#a { z-index: 5 }`)
	if len(stacking.Positive) != 0 || len(stacking.Positioned) != 0 {
		t.Error("z-index on a static box must not create a context")
	}
}

func TestOpacityCreatesContext(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body><div id="o"></div></body>`,
		`#o { opacity: 0.5 }`)
	if len(stacking.Positioned) != 1 {
		t.Fatalf("positioned contexts = %d, want 1", len(stacking.Positioned))
	}
	if stacking.Positioned[0].Root != findID(root, "o") {
		t.Error("opacity context must be rooted at the translucent box")
	}
}

func TestTransformCreatesContext(t *testing.T) {
	_, stacking := layoutHTML(t,
		`<body><div id="tr"></div></body>`,
		`#tr { transform: translate }`)
	if len(stacking.Positioned) != 1 {
		t.Errorf("transform must create a stacking context")
	}
}

func TestContextDescendantsPaintAtomically(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body><div id="low"><div id="inner"></div></div><div id="high"></div></body>`,
		`#low { position: relative; z-index: 1 }
		 #inner { position: relative; z-index: 99 }
		 #high { position: relative; z-index: 2 }`)
	order := stacking.PaintOrder()
	inner := paintIndex(order, findID(root, "inner"))
	high := paintIndex(order, findID(root, "high"))
	// inner's huge z-index is scoped to low's context.
	if !(inner < high) {
		t.Errorf("nested context must not escape its parent: inner:%d high:%d", inner, high)
	}
}

func TestPaintOrderCoversEveryBox(t *testing.T) {
	root, stacking := layoutHTML(t,
		`<body>text<div id="a"><p>deep</p></div><div id="b"></div></body>`,
		`#b { position: relative; z-index: 1 }`)
	order := stacking.PaintOrder()
	var count func(b *Box) int
	count = func(b *Box) int {
		n := 1
		for _, c := range b.Children {
			n += count(c)
		}
		return n
	}
	if len(order) != count(root) {
		t.Errorf("paint order has %d boxes, tree has %d", len(order), count(root))
	}
}
