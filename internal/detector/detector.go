package detector

import (
	"image"
	"log/slog"

	"github.com/MeKo-Tech/inkline/internal/geometry"
	"github.com/MeKo-Tech/inkline/internal/grouper"
)

// Detector extracts glyph-level bounding boxes from an image. It holds no
// state across calls; the same Detector may serve concurrent images.
type Detector struct {
	cfg Config
}

// New creates a detector, failing fast on invalid configuration.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Ranges) == 0 {
		cfg.Ranges = DefaultInkRanges()
	}
	return &Detector{cfg: cfg}, nil
}

// Config returns a copy of the detector configuration.
func (d *Detector) Config() Config { return d.cfg }

// Detect returns boxes tightly bounding connected ink-like regions, filtered
// by size and aspect ratio and sorted in reading order. A blank image yields
// an empty slice, never an error.
func (d *Detector) Detect(img image.Image) []geometry.Quad {
	if img == nil {
		return nil
	}
	mask, w, h := inkMask(img, d.cfg.Ranges)
	if len(mask) == 0 {
		return nil
	}

	for iter := 0; iter < max(d.cfg.Iterations, 0); iter++ {
		mask = closeMask(mask, w, h, d.cfg.KernelWidth, d.cfg.KernelHeight)
		mask = dilateMask(mask, w, h, d.cfg.KernelWidth, d.cfg.KernelHeight)
	}

	comps := connectedComponents(mask, w, h)
	boxes := make([]geometry.Quad, 0, len(comps))
	for _, c := range comps {
		if !d.accept(c) {
			continue
		}
		boxes = append(boxes, quadFromComponent(c))
	}
	slog.Debug("region detection completed",
		"components", len(comps), "boxes", len(boxes), "width", w, "height", h)

	if d.cfg.GroupWords && len(boxes) > 0 {
		boxes = grouper.GroupCandidates(boxes, d.cfg.Grouping)
	}
	geometry.SortReadingOrder(boxes)
	return boxes
}

// accept applies the configured size and aspect-ratio bounds.
func (d *Detector) accept(c componentBounds) bool {
	w, h := c.width(), c.height()
	if w < d.cfg.MinWidth || w > d.cfg.MaxWidth {
		return false
	}
	if h < d.cfg.MinHeight || h > d.cfg.MaxHeight {
		return false
	}
	ar := float64(w) / float64(h)
	return ar >= d.cfg.MinAspectRatio && ar <= d.cfg.MaxAspectRatio
}
