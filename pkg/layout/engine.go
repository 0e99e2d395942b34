package layout

import (
	"io"

	"github.com/charmbracelet/log"

	"kestrel/pkg/css"
	"kestrel/pkg/dom"
	"kestrel/pkg/text"
)

// Engine runs the layout pipeline: styled tree → box tree → geometry →
// positioned geometry → stacking order. A pass is pure and synchronous;
// for a fixed tree and measurer the output is identical on every run.
type Engine struct {
	viewportWidth  float64
	viewportHeight float64
	scrollX        float64
	scrollY        float64

	measurer text.Measurer
	log      *log.Logger
}

// NewEngine builds an engine for the given viewport. A nil measurer gets
// the deterministic fixed-advance fallback.
func NewEngine(viewportWidth, viewportHeight float64, measurer text.Measurer) *Engine {
	if measurer == nil {
		measurer = text.FixedMeasurer{}
	}
	return &Engine{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		measurer:       measurer,
		log:            log.New(io.Discard),
	}
}

// SetLogger installs a logger for layout tracing. Layout never logs above
// debug level.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.log = l
	}
}

// SetScroll sets the scroll offset used by fixed and sticky positioning.
func (e *Engine) SetScroll(x, y float64) {
	e.scrollX = x
	e.scrollY = y
}

// Viewport returns the viewport rect in layout coordinates.
func (e *Engine) Viewport() Rect {
	return Rect{Width: e.viewportWidth, Height: e.viewportHeight}
}

// Layout lays out a styled tree and returns the resolved box tree plus
// its stacking-context order. Every box in the returned tree has resolved
// geometry; malformed input degrades per the documented fallbacks rather
// than failing.
func (e *Engine) Layout(styled *css.StyledNode) (*Box, *StackingContext) {
	root := BuildBoxTree(styled)
	if root == nil {
		return nil, &StackingContext{}
	}

	e.layoutBlockLevel(root, 0, 0, e.viewportWidth, e.viewportHeight)
	e.resolvePositioning(root)
	stacking := BuildStackingTree(root)

	e.log.Debug("layout complete",
		"root_width", root.Dims.Content.Width,
		"root_height", root.Dims.Content.Height)
	return root, stacking
}

// LayoutDocument styles and lays out a parsed document against the given
// author rules, cascading them over the built-in user-agent rules.
func (e *Engine) LayoutDocument(doc *dom.Document, author []css.StyleRule) (*Box, *StackingContext) {
	styled := css.BuildStyleTree(doc.Root, css.CascadeRules(author))
	return e.Layout(styled)
}
