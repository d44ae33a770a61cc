// Package detector locates candidate glyph regions in a page photo using
// color and contrast heuristics instead of a trained detection network.
package detector

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/inkline/internal/grouper"
)

// HSVRange is one (lower, upper) threshold pair in HSV space. Hue is in
// degrees [0, 360); saturation and value in [0, 1]. A range with MinH > MaxH
// wraps around 0 (for reds).
type HSVRange struct {
	MinH, MaxH float64
	MinS, MaxS float64
	MinV, MaxV float64
}

// Contains reports whether the HSV triple falls inside the range.
func (r HSVRange) Contains(h, s, v float64) bool {
	if s < r.MinS || s > r.MaxS || v < r.MinV || v > r.MaxV {
		return false
	}
	if r.MinH <= r.MaxH {
		return h >= r.MinH && h <= r.MaxH
	}
	return h >= r.MinH || h <= r.MaxH
}

// DefaultInkRanges returns the fixed set of HSV ranges tuned to separate
// dark or saturated ink from lighter paper backgrounds.
func DefaultInkRanges() []HSVRange {
	return []HSVRange{
		// Dark ink of any hue (pencil, black/grey pens).
		{MinH: 0, MaxH: 360, MinS: 0, MaxS: 1, MinV: 0, MaxV: 0.35},
		// Saturated blue ink, mid value.
		{MinH: 190, MaxH: 260, MinS: 0.35, MaxS: 1, MinV: 0.2, MaxV: 0.85},
		// Saturated red ink, hue wrapping through 0.
		{MinH: 330, MaxH: 20, MinS: 0.4, MaxS: 1, MinV: 0.2, MaxV: 0.85},
	}
}

// Config holds region detection parameters.
type Config struct {
	// Ranges are OR-combined into the ink mask; empty means DefaultInkRanges.
	Ranges []HSVRange

	// Morphology kernel, wider than tall so nearby strokes bridge
	// horizontally before vertically.
	KernelWidth  int
	KernelHeight int
	Iterations   int

	// Box filters applied to connected-component bounding rectangles.
	MinWidth       int
	MinHeight      int
	MaxWidth       int
	MaxHeight      int
	MinAspectRatio float64
	MaxAspectRatio float64

	// GroupWords merges glyph-level boxes into word-level boxes before
	// returning. Off by default: the pipeline groups after recognition.
	GroupWords bool
	Grouping   grouper.CandidateConfig
}

// DefaultConfig returns detection defaults tuned for printed text.
func DefaultConfig() Config {
	return Config{
		Ranges:         DefaultInkRanges(),
		KernelWidth:    5,
		KernelHeight:   3,
		Iterations:     1,
		MinWidth:       15,
		MinHeight:      8,
		MaxWidth:       1000,
		MaxHeight:      200,
		MinAspectRatio: 0.5,
		MaxAspectRatio: 20,
		GroupWords:     false,
		Grouping:       grouper.DefaultCandidateConfig(),
	}
}

// HandwritingConfig returns looser bounds for handwritten pages, where
// glyphs run smaller and wider strokes stretch the aspect ratio.
func HandwritingConfig() Config {
	cfg := DefaultConfig()
	cfg.MinWidth = 10
	cfg.MaxAspectRatio = 25
	return cfg
}

// Validate fails fast on configurations that cannot produce sane boxes.
func (c Config) Validate() error {
	if c.KernelWidth <= 0 || c.KernelHeight <= 0 {
		return fmt.Errorf("invalid morphology kernel %dx%d", c.KernelWidth, c.KernelHeight)
	}
	if c.Iterations < 0 {
		return errors.New("morphology iterations must be >= 0")
	}
	if c.MinWidth <= 0 || c.MinHeight <= 0 {
		return fmt.Errorf("invalid minimum box size %dx%d", c.MinWidth, c.MinHeight)
	}
	if c.MaxWidth < c.MinWidth || c.MaxHeight < c.MinHeight {
		return errors.New("maximum box size below minimum")
	}
	if c.MinAspectRatio <= 0 || c.MaxAspectRatio < c.MinAspectRatio {
		return fmt.Errorf("invalid aspect ratio bounds [%v, %v]", c.MinAspectRatio, c.MaxAspectRatio)
	}
	return nil
}
