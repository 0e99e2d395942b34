package text

import (
	"sync"

	"github.com/fogleman/gg"
)

// FontConfig holds paths to the font files a FaceMeasurer can load.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
	Monospace  string
}

// FontPath picks the file matching the style combination, falling back to
// the regular face.
func (fc FontConfig) FontPath(bold, italic, mono bool) string {
	if mono && fc.Monospace != "" {
		return fc.Monospace
	}
	if bold && italic && fc.BoldItalic != "" {
		return fc.BoldItalic
	}
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	if italic && fc.Italic != "" {
		return fc.Italic
	}
	return fc.Regular
}

// FaceMeasurer measures text with real font faces through gg. Contexts
// are cached per (path, size) because loading a face is far more
// expensive than measuring with it.
type FaceMeasurer struct {
	Config FontConfig

	mu    sync.Mutex
	faces map[faceKey]*gg.Context
}

type faceKey struct {
	path string
	size float64
}

// NewFaceMeasurer builds a measurer over the given font files.
func NewFaceMeasurer(config FontConfig) *FaceMeasurer {
	return &FaceMeasurer{
		Config: config,
		faces:  make(map[faceKey]*gg.Context),
	}
}

func (m *FaceMeasurer) Measure(s string, font Font) Metrics {
	path := m.Config.FontPath(font.Bold, font.Italic, font.Mono)

	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{path: path, size: font.Size}
	dc, ok := m.faces[key]
	if !ok {
		dc = gg.NewContext(1, 1)
		if err := dc.LoadFontFace(path, font.Size); err != nil {
			// No usable face: fall back to a rough estimate rather
			// than failing layout.
			m.faces[key] = nil
			dc = nil
		} else {
			m.faces[key] = dc
		}
	}

	if dc == nil {
		return FixedMeasurer{Advance: 0.6}.Measure(s, font)
	}

	w, h := dc.MeasureString(s)
	return Metrics{Width: w, Height: h, Breaks: BreakOpportunities(s)}
}
