package pipeline

import (
	"context"
	"image"
	"log/slog"
	"strings"

	"github.com/MeKo-Tech/inkline/internal/geometry"
	"github.com/MeKo-Tech/inkline/internal/grouper"
	"github.com/MeKo-Tech/inkline/internal/warp"
)

// Run executes the full pass over one image. It never returns an error: a
// failed or empty page yields an empty Result, and individual glyphs whose
// recognition fails are skipped with a warning.
func (p *Pipeline) Run(ctx context.Context, img image.Image) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline pass panicked", "panic", r)
			result = Result{}
		}
	}()

	if img == nil {
		return Result{}
	}

	boxes := p.detector.Detect(img)
	if len(boxes) == 0 {
		return Result{}
	}
	slog.Debug("detected glyph candidates", "count", len(boxes))

	glyphs := p.recognizeGlyphs(ctx, img, boxes)
	// A fired deadline voids the whole pass; a partially recognized page must
	// never ship as a successful result.
	if ctx.Err() != nil {
		slog.Warn("pipeline pass cancelled, discarding",
			"recognized", len(glyphs), "total", len(boxes))
		return Result{}
	}
	if len(glyphs) == 0 {
		return Result{}
	}

	return resultFromWords(p.group(glyphs))
}

func (p *Pipeline) recognizeGlyphs(ctx context.Context, img image.Image, boxes []geometry.Quad) []grouper.Glyph {
	glyphs := make([]grouper.Glyph, 0, len(boxes))
	for _, box := range boxes {
		if ctx.Err() != nil {
			break
		}

		crop := warp.CropQuad(img, box)
		res, err := p.recognizer.Recognize(crop)
		if err != nil {
			slog.Warn("glyph recognition failed, skipping",
				"x", box.MinX, "y", box.MinY, "error", err)
			continue
		}
		if strings.TrimSpace(res.Text) == "" || res.Confidence < p.cfg.MinConfidence {
			continue
		}
		glyphs = append(glyphs, grouper.Glyph{
			Box:        box,
			Text:       res.Text,
			Confidence: res.Confidence,
			Count:      1,
		})
	}
	return glyphs
}

func (p *Pipeline) group(glyphs []grouper.Glyph) []grouper.Word {
	switch p.cfg.Strategy {
	case StrategyLineWord:
		return grouper.GroupGlyphs(glyphs, p.cfg.Grouping)
	case StrategyDilation:
		return grouper.DilateGlyphs(glyphs, p.cfg.Dilation)
	default:
		words := make([]grouper.Word, 0, len(glyphs))
		for _, g := range glyphs {
			words = append(words, grouper.Word{
				Box:        g.Box,
				Text:       g.Text,
				Confidence: g.Confidence,
				Count:      g.Count,
			})
		}
		geometry.SortReadingOrder(words)
		return words
	}
}
