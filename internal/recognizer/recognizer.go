package recognizer

import (
	"errors"
	"fmt"
	"image"
)

// Config holds recognition preprocessing parameters.
type Config struct {
	// ImageHeight is the fixed model input height.
	ImageHeight int
	// MaxWidth caps the resized width; crops are never upscaled past it.
	MaxWidth int
	// Blank is the reserved no-output class index.
	Blank int
}

// DefaultConfig returns the recognition defaults.
func DefaultConfig() Config {
	return Config{ImageHeight: 48, MaxWidth: 320, Blank: 0}
}

// Validate fails fast on unusable parameters.
func (c Config) Validate() error {
	if c.ImageHeight <= 0 {
		return fmt.Errorf("invalid image height %d", c.ImageHeight)
	}
	if c.MaxWidth < 0 {
		return fmt.Errorf("invalid max width %d", c.MaxWidth)
	}
	if c.Blank < 0 {
		return fmt.Errorf("invalid blank class %d", c.Blank)
	}
	return nil
}

// Result is one recognized crop.
type Result struct {
	Text       string
	Confidence float64
}

// Recognizer runs the scoring model over cropped regions and decodes the
// output. The scorer and charset are injected; the recognizer itself is
// stateless across calls.
type Recognizer struct {
	cfg     Config
	scorer  Scorer
	charset *Charset
}

// New creates a recognizer around an externally managed scorer and charset.
func New(cfg Config, scorer Scorer, charset *Charset) (*Recognizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, errors.New("scorer cannot be nil")
	}
	if charset == nil {
		return nil, errors.New("charset cannot be nil")
	}
	return &Recognizer{cfg: cfg, scorer: scorer, charset: charset}, nil
}

// Config returns a copy of the recognizer configuration.
func (r *Recognizer) Config() Config { return r.cfg }

// Recognize decodes one cropped region. Degenerate inputs return an empty
// result without invoking the model; scorer failures propagate to the caller.
func (r *Recognizer) Recognize(img image.Image) (Result, error) {
	resized := ResizeForRecognition(img, r.cfg.ImageHeight, r.cfg.MaxWidth)
	if resized == nil {
		return Result{}, nil
	}
	data, w, h := Normalize(resized)
	if w <= 0 || h <= 0 {
		return Result{}, nil
	}

	scores, err := r.scorer.Score(data, w, h)
	if err != nil {
		return Result{}, fmt.Errorf("scoring failed: %w", err)
	}
	dec := DecodeGreedy(scores, r.cfg.Blank)
	return Result{
		Text:       CleanText(r.charset.Decode(dec.Indices)),
		Confidence: dec.Confidence,
	}, nil
}
