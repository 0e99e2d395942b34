// Package text provides the text-measurement capability layout consumes.
// Layout never shapes text itself; it asks a Measurer for run metrics and
// break opportunities and builds line boxes from those.
package text

import (
	"strings"
	"unicode/utf8"
)

// Font carries the style subset that affects measurement.
type Font struct {
	Size   float64
	Bold   bool
	Italic bool
	Mono   bool
	Family string
}

// Metrics is the result of measuring one run of text.
type Metrics struct {
	Width  float64
	Height float64
	// Breaks lists the byte offsets at which the run may be split onto
	// a new line (word boundaries), in ascending order.
	Breaks []int
}

// Measurer measures text runs. Implementations must be deterministic:
// identical inputs always yield identical metrics, because layout output
// must be reproducible bit for bit.
type Measurer interface {
	Measure(s string, font Font) Metrics
}

// BreakOpportunities returns the word-boundary break offsets for s: the
// byte index of every whitespace run's start. Shared by all measurers.
func BreakOpportunities(s string) []int {
	var breaks []int
	inSpace := false
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if !inSpace {
				breaks = append(breaks, i)
			}
			inSpace = true
		} else {
			inSpace = false
		}
	}
	return breaks
}

// FixedMeasurer assigns every rune a fixed advance relative to the font
// size. It needs no font files, which makes it the measurer of choice for
// tests and headless use.
type FixedMeasurer struct {
	// Advance is the per-rune width as a fraction of the font size.
	// Zero means the default of 0.5.
	Advance float64
	// LineHeight is the run height as a fraction of the font size.
	// Zero means the default of 1.2.
	LineHeight float64
}

func (m FixedMeasurer) Measure(s string, font Font) Metrics {
	advance := m.Advance
	if advance == 0 {
		advance = 0.5
	}
	lineHeight := m.LineHeight
	if lineHeight == 0 {
		lineHeight = 1.2
	}
	return Metrics{
		Width:  float64(utf8.RuneCountInString(s)) * advance * font.Size,
		Height: lineHeight * font.Size,
		Breaks: BreakOpportunities(s),
	}
}

// SplitWords splits a run into its words, dropping whitespace. Used by
// line breaking when a run must be broken at word boundaries.
func SplitWords(s string) []string {
	return strings.Fields(s)
}
