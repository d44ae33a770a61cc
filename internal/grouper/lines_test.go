package grouper

import (
	"testing"

	"github.com/MeKo-Tech/inkline/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// glyphAt builds a single-count glyph with an axis-aligned box centered at
// (cx, cy) with the given width and height.
func glyphAt(cx, cy, w, h float64, text string, conf float64) Glyph {
	return Glyph{
		Box:        geometry.NewRectQuad(cx-w/2, cy-h/2, cx+w/2, cy+h/2),
		Text:       text,
		Confidence: conf,
		Count:      1,
	}
}

func TestGroupGlyphs_Empty(t *testing.T) {
	assert.Empty(t, GroupGlyphs(nil, DefaultConfig()))
	assert.Empty(t, GroupCandidates(nil, DefaultCandidateConfig()))
}

func TestGroupGlyphs_ConcreteTwoWordScenario(t *testing.T) {
	// Four glyphs on one line, x-centers 5, 15, 40, 50, widths 8. Median
	// width 8 and spacing ratio 1.5 give threshold 12; the 17px gap between
	// glyph 2 (right edge 19) and glyph 3 (left edge 36) must split words.
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "h", 0.9),
		glyphAt(15, 10, 8, 10, "i", 0.9),
		glyphAt(40, 10, 8, 10, "g", 0.8),
		glyphAt(50, 10, 8, 10, "o", 0.8),
	}
	cfg := DefaultConfig()
	cfg.MergeLowConfidence = false
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 2)
	assert.Equal(t, "hi", words[0].Text)
	assert.Equal(t, "go", words[1].Text)
	assert.Equal(t, 2, words[0].Count)
	assert.InDelta(t, 0.9, words[0].Confidence, 1e-9)
	assert.InDelta(t, 0.8, words[1].Confidence, 1e-9)
}

func TestGroupGlyphs_UnionBoundsAreExtremal(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "a", 0.9),
		glyphAt(15, 12, 8, 14, "b", 0.7),
	}
	cfg := DefaultConfig()
	cfg.MergeLowConfidence = false
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 1)
	w := words[0]
	assert.InDelta(t, 1.0, w.Box.MinX, 1e-9)
	assert.InDelta(t, 19.0, w.Box.MaxX, 1e-9)
	assert.InDelta(t, 5.0, w.Box.MinY, 1e-9)
	assert.InDelta(t, 19.0, w.Box.MaxY, 1e-9)

	// Single-member union equals the member box.
	solo := GroupGlyphs(glyphs[:1], cfg)
	require.Len(t, solo, 1)
	assert.Equal(t, glyphs[0].Box.MinX, solo[0].Box.MinX)
	assert.Equal(t, glyphs[0].Box.MaxY, solo[0].Box.MaxY)
}

func TestGroupGlyphs_SeparateLines(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(10, 10, 8, 10, "a", 0.9),
		glyphAt(10, 60, 8, 10, "b", 0.9),
		glyphAt(20, 61, 8, 10, "c", 0.9),
	}
	cfg := DefaultConfig()
	cfg.MergeLowConfidence = false
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 2)
	assert.Equal(t, "a", words[0].Text)
	assert.Equal(t, "bc", words[1].Text)
}

func TestGroupGlyphs_ReadingOrderAcrossLines(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(50, 60, 8, 10, "d", 0.9),
		glyphAt(10, 60, 8, 10, "c", 0.9),
		glyphAt(50, 10, 8, 10, "b", 0.9),
		glyphAt(10, 10, 8, 10, "a", 0.9),
	}
	cfg := DefaultConfig()
	cfg.SpacingRatio = 0.1 // force one word per glyph
	cfg.MergeLowConfidence = false
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 4)
	texts := []string{words[0].Text, words[1].Text, words[2].Text, words[3].Text}
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts)
}

func TestGroupGlyphs_SpacingRatioMonotonicity(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "a", 0.9),
		glyphAt(18, 10, 8, 10, "b", 0.9),
		glyphAt(45, 10, 8, 10, "c", 0.9),
		glyphAt(70, 10, 8, 10, "d", 0.9),
	}
	cfg := DefaultConfig()
	cfg.MergeLowConfidence = false
	prev := -1
	for _, ratio := range []float64{0.2, 0.5, 1.0, 1.5, 2.5, 4.0, 8.0} {
		cfg.SpacingRatio = ratio
		n := len(GroupGlyphs(glyphs, cfg))
		if prev >= 0 {
			assert.LessOrEqual(t, n, prev, "ratio %v increased word count", ratio)
		}
		prev = n
	}
}

func TestGroupGlyphs_CountWeightedConfidence(t *testing.T) {
	// A two-glyph pre-merged word joining a single glyph must weight 2:1.
	merged := appendGlyph(
		Word{Box: geometry.NewRectQuad(0, 0, 10, 10), Text: "ab", Confidence: 0.9, Count: 2},
		glyphAt(12, 5, 4, 10, "c", 0.3),
	)
	assert.Equal(t, 3, merged.Count)
	assert.InDelta(t, (0.9*2+0.3)/3, merged.Confidence, 1e-9)
	assert.Equal(t, "abc", merged.Text)
}

func TestMergeLowConfidence_PrefersPreviousWord(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "a", 0.9),
		glyphAt(14, 10, 8, 10, "b", 0.9),
		glyphAt(40, 10, 8, 10, "?", 0.2),
		glyphAt(66, 10, 8, 10, "c", 0.9),
	}
	cfg := DefaultConfig()
	cfg.SpacingRatio = 1.0 // gaps: 1, 18, 18 -> three words before merging
	cfg.MergeDistanceRatio = 3.0
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 2)
	assert.Equal(t, "ab?", words[0].Text)
	assert.Equal(t, "c", words[1].Text)
}

func TestMergeLowConfidence_FallsBackToNextWord(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "?", 0.2),
		glyphAt(31, 10, 8, 10, "a", 0.9),
		glyphAt(40, 10, 8, 10, "b", 0.9),
	}
	cfg := DefaultConfig()
	cfg.SpacingRatio = 1.5 // gaps: 18, 1 -> {?}, {ab}
	cfg.MergeDistanceRatio = 3.0
	words := GroupGlyphs(glyphs, cfg)
	require.Len(t, words, 1)
	assert.Equal(t, "?ab", words[0].Text)
}

func TestMergeLowConfidence_TooFarStaysAlone(t *testing.T) {
	glyphs := []Glyph{
		glyphAt(5, 10, 8, 10, "a", 0.9),
		glyphAt(200, 10, 8, 10, "?", 0.2),
	}
	words := GroupGlyphs(glyphs, DefaultConfig())
	require.Len(t, words, 2)
}

func TestGroupCandidates_VerticalOverlapJoinsLine(t *testing.T) {
	// Second box's center sits outside the 0.3*median band but its box
	// overlaps the line's union bounds by more than half its height.
	boxes := []geometry.Quad{
		geometry.NewRectQuad(0, 0, 20, 20),
		geometry.NewRectQuad(25, 8, 45, 28),
	}
	got := GroupCandidates(boxes, DefaultCandidateConfig())
	require.Len(t, got, 1)
	assert.InDelta(t, 0.0, got[0].MinY, 1e-9)
	assert.InDelta(t, 28.0, got[0].MaxY, 1e-9)
}

func TestGroupCandidates_MergesIntoWordBoxes(t *testing.T) {
	boxes := []geometry.Quad{
		geometry.NewRectQuad(0, 0, 10, 10),
		geometry.NewRectQuad(12, 0, 22, 10),
		geometry.NewRectQuad(80, 0, 90, 10),
	}
	got := GroupCandidates(boxes, DefaultCandidateConfig())
	require.Len(t, got, 2)
	assert.InDelta(t, 22.0, got[0].MaxX, 1e-9)
	assert.InDelta(t, 80.0, got[1].MinX, 1e-9)
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 0.0, median(nil), 1e-9)
	assert.InDelta(t, 3.0, median([]float64{3}), 1e-9)
	assert.InDelta(t, 2.5, median([]float64{1, 4, 2, 3}), 1e-9)
	assert.InDelta(t, 2.0, median([]float64{3, 1, 2}), 1e-9)
}
