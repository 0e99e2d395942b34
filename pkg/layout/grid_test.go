package layout

import (
	"testing"
)

func TestGridFrTracks(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 1fr 2fr; width: 300px }
		 #a, #b { height: 20px }`)
	a, b := findID(root, "a"), findID(root, "b")
	approx(t, a.Dims.Content.Width, 100, "1fr column")
	approx(t, b.Dims.Content.Width, 200, "2fr column")
	approx(t, a.Dims.Content.X, 0, "first column x")
	approx(t, b.Dims.Content.X, 100, "second column x")
}

func TestGridFixedAndFrMix(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div><div id="c2"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 100px 1fr 50%; width: 400px }
		 #a, #b, #c2 { height: 10px }`)
	approx(t, findID(root, "a").Dims.Content.Width, 100, "fixed column")
	approx(t, findID(root, "c2").Dims.Content.Width, 200, "percent column")
	approx(t, findID(root, "b").Dims.Content.Width, 100, "fr takes the remainder")
}

func TestGridAutoPlacementRowMajor(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div><div id="c2"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 100px 100px; width: 200px }
		 #a, #b, #c2 { height: 20px }`)
	a, b, c := findID(root, "a"), findID(root, "b"), findID(root, "c2")
	assertRect(t, a.Dims.Content, Rect{X: 0, Y: 0, Width: 100, Height: 20}, "cell 0,0")
	assertRect(t, b.Dims.Content, Rect{X: 100, Y: 0, Width: 100, Height: 20}, "cell 0,1")
	assertRect(t, c.Dims.Content, Rect{X: 0, Y: 20, Width: 100, Height: 20}, "cell 1,0")
}

func TestGridExplicitSpan(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 100px 100px; width: 200px }
		 #a { grid-column: 1 / 3; height: 20px }
		 #b { height: 20px }`)
	a, b := findID(root, "a"), findID(root, "b")
	approx(t, a.Dims.Content.Width, 200, "spanning item width")
	// The span fills row one; the next item lands on row two.
	approx(t, b.Dims.Content.Y, 20, "auto item below the span")
	approx(t, b.Dims.Content.X, 0, "auto item in the first column")
}

func TestGridGaps(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div><div id="c2"></div><div id="d"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 50px 50px; gap: 10px 20px; width: 300px }
		 #a, #b, #c2, #d { height: 30px }`)
	b, c := findID(root, "b"), findID(root, "c2")
	approx(t, b.Dims.Content.X, 70, "column gap offsets the second column")
	approx(t, c.Dims.Content.Y, 40, "row gap offsets the second row")
}

func TestGridDensePackingBackfills(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="w"></div><div id="n"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 100px 100px; grid-auto-flow: row dense; width: 200px }
		 #w { grid-column: 2 / 3; height: 20px }
		 #n { height: 20px }`)
	// Dense flow fills the hole the explicit item left in column one.
	n := findID(root, "n")
	approx(t, n.Dims.Content.X, 0, "backfilled column")
	approx(t, n.Dims.Content.Y, 0, "backfilled row")
}

func TestGridMinMaxTrack(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div></div></body>`,
		`#g { display: grid; grid-template-columns: minmax(150px, 1fr) 1fr; width: 200px }
		 #a, #b { height: 10px }`)
	// 1fr of the 50px free space is 25px, below the 150px floor.
	approx(t, findID(root, "a").Dims.Content.Width, 150, "minmax floor holds")
	approx(t, findID(root, "b").Dims.Content.Width, 50, "plain fr gets the rest")
}

func TestGridRepeatExpansion(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div><div id="c2"></div></div></body>`,
		`#g { display: grid; grid-template-columns: repeat(3, 1fr); width: 300px }
		 #a, #b, #c2 { height: 10px }`)
	approx(t, findID(root, "a").Dims.Content.Width, 100, "first repeat track")
	approx(t, findID(root, "c2").Dims.Content.X, 200, "third repeat track x")
}

func TestGridImplicitRows(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div></div></body>`,
		`#g { display: grid; grid-template-columns: 100px; width: 100px }
		 #a { height: 30px }
		 #b { height: 50px }`)
	approx(t, findID(root, "b").Dims.Content.Y, 30, "implicit row after the first")
	approx(t, findID(root, "g").Dims.Content.Height, 80, "container sums implicit rows")
}

func TestGridColumnFlow(t *testing.T) {
	root, _ := layoutHTML(t,
		`<body><div id="g"><div id="a"></div><div id="b"></div><div id="c2"></div></div></body>`,
		`#g { display: grid; grid-template-rows: 20px 20px; grid-auto-flow: column; grid-auto-columns: 50px; width: 300px }
		 #a, #b, #c2 { height: 20px }`)
	a, b, c := findID(root, "a"), findID(root, "b"), findID(root, "c2")
	approx(t, a.Dims.Content.Y, 0, "first fills down")
	approx(t, b.Dims.Content.Y, 20, "second below it")
	approx(t, c.Dims.Content.X, 50, "third starts the next column")
	approx(t, c.Dims.Content.Y, 0, "third back at the top row")
}
