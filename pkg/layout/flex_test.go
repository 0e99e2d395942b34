package layout

import (
	"testing"
)

func TestFlexGrowSplitsFreeSpace(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; width: 300px }
		 #a { flex: 1 }
		 #b { flex: 2 }`)
	a, b := findID(root, "a"), findID(root, "b")
	approx(t, a.Dims.Content.Width, 100, "grow 1 width")
	approx(t, b.Dims.Content.Width, 200, "grow 2 width")
	approx(t, a.Dims.Content.X, 0, "first item x")
	approx(t, b.Dims.Content.X, 100, "second item x")
}

func TestFlexGrowRespectsMaxWidth(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div><div id="d"></div></div></body>`,
		`#c { display: flex; width: 300px }
		 #a, #b, #d { flex: 1 }
		 #a { max-width: 50px }`)
	// The clamped item freezes at 50px and the leftover redistributes.
	approx(t, findID(root, "a").Dims.Content.Width, 50, "clamped item")
	approx(t, findID(root, "b").Dims.Content.Width, 125, "second item")
	approx(t, findID(root, "d").Dims.Content.Width, 125, "third item")
}

func TestFlexShrinkRespectsMinWidth(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; width: 200px }
		 #a, #b { width: 150px }
		 #a { min-width: 140px }`)
	// 300px of bases in 200px: equal shrink would give 100px each, but
	// the min freezes one at 140 and the other absorbs the rest.
	approx(t, findID(root, "a").Dims.Content.Width, 140, "min-clamped item")
	approx(t, findID(root, "b").Dims.Content.Width, 60, "other item")
}

func TestFlexJustifyContent(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; width: 300px; justify-content: space-between; column-gap: 20px }
		 #a, #b { width: 50px; height: 10px }`)
	approx(t, findID(root, "a").Dims.Content.X, 0, "first at start")
	approx(t, findID(root, "b").Dims.Content.X, 250, "second at end")
}

func TestFlexColumnStacksAndStretches(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; flex-direction: column; width: 300px }
		 #a, #b { height: 40px }`)
	a, b := findID(root, "a"), findID(root, "b")
	approx(t, a.Dims.Content.Y, 0, "first item y")
	approx(t, b.Dims.Content.Y, 40, "second item y")
	approx(t, a.Dims.Content.Width, 300, "stretch fills the cross axis")
	approx(t, findID(root, "c").Dims.Content.Height, 80, "auto container height")
}

func TestFlexWrap(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; flex-wrap: wrap; width: 100px }
		 #a, #b { width: 60px; height: 30px }`)
	a, b := findID(root, "a"), findID(root, "b")
	approx(t, a.Dims.Content.Y, 0, "first line")
	approx(t, b.Dims.Content.Y, 30, "second line")
	approx(t, b.Dims.Content.X, 0, "wrapped item restarts the main axis")
	approx(t, findID(root, "c").Dims.Content.Height, 60, "two lines of 30px")
}

func TestFlexOrderReordersItems(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; width: 200px }
		 #a { width: 50px; order: 2 }
		 #b { width: 50px; order: 1 }`)
	approx(t, findID(root, "b").Dims.Content.X, 0, "lower order first")
	approx(t, findID(root, "a").Dims.Content.X, 50, "higher order second")
}

func TestFlexAlignItemsCenter(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; width: 200px; align-items: center }
		 #a { width: 50px; height: 40px }
		 #b { width: 50px; height: 20px }`)
	approx(t, findID(root, "a").Dims.Content.Y, 0, "tallest item sets the line")
	approx(t, findID(root, "b").Dims.Content.Y, 10, "shorter item centers")
}

func TestFlexRowReverse(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div></div></body>`,
		`#c { display: flex; flex-direction: row-reverse; width: 200px }
		 #a, #b { width: 50px }`)
	approx(t, findID(root, "b").Dims.Content.X, 0, "reversed first placed item")
	approx(t, findID(root, "a").Dims.Content.X, 50, "reversed second placed item")
}

func TestFlexTextChildBecomesItem(t *testing.T) {
	root, _ := layoutHTML(t, `<body><div id="c">hi</div></body>`,
		`#c { display: flex; width: 200px }`)
	c := findID(root, "c")
	if len(c.Children) != 1 || c.Children[0].Type != FlexItemBox {
		t.Fatalf("flex text child must be wrapped in an anonymous item, got %+v", c.Children)
	}
}

func TestFlexConvergesWithConflictingConstraints(t *testing.T) {
	// All three items clamp; distribution must still terminate with
	// every item inside its bounds.
	root, _ := layoutHTML(t,
		`<body><div id="c"><div id="a"></div><div id="b"></div><div id="d"></div></div></body>`,
		`#c { display: flex; width: 300px }
		 #a { flex: 1; max-width: 20px }
		 #b { flex: 1; max-width: 30px }
		 #d { flex: 1; min-width: 10px; max-width: 40px }`)
	approx(t, findID(root, "a").Dims.Content.Width, 20, "a at max")
	approx(t, findID(root, "b").Dims.Content.Width, 30, "b at max")
	approx(t, findID(root, "d").Dims.Content.Width, 40, "d at max")
}
