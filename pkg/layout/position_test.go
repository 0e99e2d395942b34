package layout

import (
	"testing"
)

func TestRelativeOffsetsWithoutAffectingFlow(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="a"></div><div id="b"></div></body>`,
		`#a { position: relative; left: 10px; top: 5px; height: 30px }
		 #b { height: 30px }`)
	a, b := findID(root, "a"), findID(root, "b")
	assertRect(t, a.Dims.Content, Rect{X: 10, Y: 5, Width: 800, Height: 30}, "offset box")
	// The sibling still sees the original flow position.
	approx(t, b.Dims.Content.Y, 30, "sibling unaffected")
}

func TestRelativeRightBottomFallback(t *testing.T) {
	root, _ := layoutHTML(t, `<body><div id="a"></div></body>`,
		`#a { position: relative; right: 10px; bottom: 5px; height: 20px }`)
	a := findID(root, "a")
	approx(t, a.Dims.Content.X, -10, "right offsets leftward")
	approx(t, a.Dims.Content.Y, -5, "bottom offsets upward")
}

func TestAbsoluteAgainstPositionedAncestor(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="rel"><div id="abs"></div></div></body>`,
		`#rel { position: relative; width: 200px; height: 200px }
		 #abs { position: absolute; top: 10px; left: 10px; width: 50px; height: 50px }`)
	abs := findID(root, "abs")
	assertRect(t, abs.Dims.Content, Rect{X: 10, Y: 10, Width: 50, Height: 50}, "absolute box")
}

func TestAbsoluteSkipsUnpositionedAncestor(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="rel"><div id="plain"><div id="abs"></div></div></div></body>`,
		`#rel { position: relative; width: 300px; height: 300px; padding: 20px }
		 #plain { height: 50px }
		 #abs { position: absolute; top: 0; left: 0; width: 10px; height: 10px }`)
	// The containing block is rel's padding box, not plain's.
	abs := findID(root, "abs")
	approx(t, abs.Dims.Content.X, 0, "x at rel padding box origin")
	approx(t, abs.Dims.Content.Y, 0, "y at rel padding box origin")
}

func TestAbsoluteRightBottomAnchors(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="rel"><div id="abs"></div></div></body>`,
		`#rel { position: relative; width: 200px; height: 100px }
		 #abs { position: absolute; right: 10px; bottom: 10px; width: 50px; height: 20px }`)
	abs := findID(root, "abs")
	approx(t, abs.Dims.Content.X, 140, "right anchored")
	approx(t, abs.Dims.Content.Y, 70, "bottom anchored")
}

func TestAbsoluteOppositeOffsetsSolveSize(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="rel"><div id="abs"></div></div></body>`,
		`#rel { position: relative; width: 200px; height: 100px }
		 #abs { position: absolute; left: 10px; right: 10px; top: 5px; bottom: 5px }`)
	abs := findID(root, "abs")
	assertRect(t, abs.Dims.Content, Rect{X: 10, Y: 5, Width: 180, Height: 90}, "stretched box")
}

func TestAbsoluteWithoutOffsetsKeepsStaticPosition(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="a"></div><div id="abs"></div></body>`,
		`#a { height: 40px }
		 #abs { position: absolute; width: 10px; height: 10px }`)
	// No offsets: the box stays where flow would have put it.
	approx(t, findID(root, "abs").Dims.Content.Y, 40, "static position fallback")
}

func TestAbsoluteRemovedFromFlow(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="abs"></div><div id="b"></div></body>`,
		`#abs { position: absolute; height: 100px; width: 100px }
		 #b { height: 20px }`)
	approx(t, findID(root, "b").Dims.Content.Y, 0, "flow ignores the absolute box")
	approx(t, root.Dims.Content.Height, 20, "container height ignores it too")
}

func TestFixedAnchorsToViewport(t *testing.T) {
	root, _ := layoutHTMLAt(t,
		`<body><div id="f"></div></body>`,
		`#f { position: fixed; top: 10px; left: 20px; width: 10px; height: 10px }`,
		800, 600, 0, 100)
	// In document coordinates a fixed box follows the scroll offset.
	f := findID(root, "f")
	approx(t, f.Dims.Content.X, 20, "viewport x")
	approx(t, f.Dims.Content.Y, 110, "viewport y plus scroll")
}

func TestStickyFollowsScroll(t *testing.T) {
	root, _ := layoutHTMLAt(t,
		`<body><div id="s"></div><div id="spacer"></div></body>`,
		`#s { position: sticky; top: 0; height: 20px }
		 #spacer { height: 500px }`,
		800, 600, 0, 50)
	approx(t, findID(root, "s").Dims.Content.Y, 50, "stuck to the scrolled viewport top")
}

func TestStickyClampsToParent(t *testing.T) {
	root, _ := layoutHTMLAt(t,
		`<body><div id="s"></div><div id="spacer"></div></body>`,
		`#s { position: sticky; top: 0; height: 20px }
		 #spacer { height: 100px }`,
		800, 600, 0, 500)
	// The body content box is 120px tall; the sticky box stops at its
	// bottom edge instead of following the scroll out of it.
	approx(t, findID(root, "s").Dims.Content.Y, 100, "clamped to parent bottom")
}

func TestStickyRightFollowsViewportEdge(t *testing.T) {
	root, _ := layoutHTMLAt(t,
		`<body><div id="c"><div id="s"></div></div></body>`,
		`#c { display: flex; justify-content: flex-end; width: 800px }
		 #s { position: sticky; right: 10px; width: 100px; height: 20px }`,
		200, 200, 0, 0)
	// Flow puts the item at x=700, past the 200px viewport; the right
	// offset pulls it back to 10px inside the viewport's right edge.
	approx(t, findID(root, "s").Dims.Content.X, 90, "stuck to the viewport right edge")
}

func TestStickyRightClampsToParent(t *testing.T) {
	root, _ := layoutHTMLAt(t,
		`<body><div id="c"><div id="s"></div></div></body>`,
		`#c { display: flex; justify-content: flex-end; width: 800px }
		 #s { position: sticky; right: 10px; width: 100px; height: 20px }`,
		80, 200, 0, 0)
	// The wanted position lies left of the parent's content box; the box
	// stops at the parent's left edge instead of leaving it.
	approx(t, findID(root, "s").Dims.Content.X, 0, "clamped to parent left")
}

func TestStickyRightBeforeScrollStaysInFlow(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="s"></div></body>`,
		`#s { position: sticky; right: 10px; width: 100px; height: 20px }`)
	// The box is well inside the viewport's right edge, so it keeps its
	// flow position.
	approx(t, findID(root, "s").Dims.Content.X, 0, "unengaged sticky keeps its flow position")
}

func TestStickyBeforeScrollStaysInFlow(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="a"></div><div id="s"></div></body>`,
		`#a { height: 30px }
		 #s { position: sticky; top: 0; height: 20px }`)
	approx(t, findID(root, "s").Dims.Content.Y, 30, "unscrolled sticky keeps its flow position")
}
