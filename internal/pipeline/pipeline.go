// Package pipeline wires ink detection, perspective cropping, sequence
// recognition and glyph grouping into a single end-to-end OCR pass.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/inkline/internal/detector"
	"github.com/MeKo-Tech/inkline/internal/grouper"
	"github.com/MeKo-Tech/inkline/internal/recognizer"
)

// Strategy selects how recognized glyphs are merged into words.
type Strategy string

const (
	// StrategyNone emits one word per detected glyph.
	StrategyNone Strategy = "none"
	// StrategyLineWord clusters glyphs into lines and splits lines on
	// horizontal gaps.
	StrategyLineWord Strategy = "line_word"
	// StrategyDilation merges glyphs whose expanded boxes overlap.
	StrategyDilation Strategy = "dilation"
)

// ParseStrategy validates a strategy name; the empty string means none.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNone, "":
		return StrategyNone, nil
	case StrategyLineWord:
		return StrategyLineWord, nil
	case StrategyDilation:
		return StrategyDilation, nil
	default:
		return "", fmt.Errorf("unknown grouping strategy %q", s)
	}
}

// Config holds configuration for the OCR pipeline and its components.
type Config struct {
	ModelPath string
	DictPath  string

	Detector   detector.Config
	Recognizer recognizer.Config
	Grouping   grouper.Config
	Dilation   grouper.DilationConfig

	// Strategy picks the word grouping pass applied after recognition.
	Strategy Strategy
	// MinConfidence drops recognized glyphs scoring below it.
	MinConfidence float64
}

// DefaultConfig returns a default pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		Detector:      detector.DefaultConfig(),
		Recognizer:    recognizer.DefaultConfig(),
		Grouping:      grouper.DefaultConfig(),
		Dilation:      grouper.DefaultDilationConfig(),
		Strategy:      StrategyLineWord,
		MinConfidence: 0.3,
	}
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg Config
}

// NewBuilder creates a new pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithModelPath sets the recognition model path.
func (b *Builder) WithModelPath(path string) *Builder {
	if path != "" {
		b.cfg.ModelPath = path
	}
	return b
}

// WithDictionaryPath sets the character dictionary path.
func (b *Builder) WithDictionaryPath(path string) *Builder {
	if path != "" {
		b.cfg.DictPath = path
	}
	return b
}

// WithDetectorConfig replaces the detector configuration.
func (b *Builder) WithDetectorConfig(cfg detector.Config) *Builder {
	b.cfg.Detector = cfg
	return b
}

// WithHandwriting switches the detector to the handwriting preset.
func (b *Builder) WithHandwriting(enabled bool) *Builder {
	if enabled {
		b.cfg.Detector = detector.HandwritingConfig()
	}
	return b
}

// WithStrategy sets the word grouping strategy.
func (b *Builder) WithStrategy(s Strategy) *Builder {
	if s != "" {
		b.cfg.Strategy = s
	}
	return b
}

// WithMinConfidence sets the glyph confidence floor.
func (b *Builder) WithMinConfidence(min float64) *Builder {
	if min >= 0 && min <= 1 {
		b.cfg.MinConfidence = min
	}
	return b
}

// WithImageHeight overrides the recognition input height.
func (b *Builder) WithImageHeight(h int) *Builder {
	if h > 0 {
		b.cfg.Recognizer.ImageHeight = h
	}
	return b
}

// Config returns a copy of the current config.
func (b *Builder) Config() Config { return b.cfg }

// Validate checks that the configuration is complete and sane.
func (b *Builder) Validate() error {
	if b.cfg.ModelPath == "" {
		return errors.New("recognition model path is empty")
	}
	if b.cfg.DictPath == "" {
		return errors.New("dictionary path is empty")
	}
	if _, err := ParseStrategy(string(b.cfg.Strategy)); err != nil {
		return err
	}
	if b.cfg.MinConfidence < 0 || b.cfg.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v outside [0,1]", b.cfg.MinConfidence)
	}
	if err := b.cfg.Detector.Validate(); err != nil {
		return fmt.Errorf("detector config: %w", err)
	}
	if err := b.cfg.Recognizer.Validate(); err != nil {
		return fmt.Errorf("recognizer config: %w", err)
	}
	return nil
}

// Pipeline runs the full detect, crop, recognize and group sequence.
type Pipeline struct {
	cfg        Config
	detector   *detector.Detector
	recognizer *recognizer.Recognizer
	scorer     *recognizer.ONNXScorer
}

// Build initializes the pipeline, loading the ONNX model and dictionary.
func (b *Builder) Build() (*Pipeline, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	scorer, err := recognizer.NewONNXScorer(b.cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("init scorer: %w", err)
	}
	charset, err := recognizer.LoadCharset(b.cfg.DictPath)
	if err != nil {
		_ = scorer.Close()
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	p, err := b.BuildWithScorer(scorer, charset)
	if err != nil {
		_ = scorer.Close()
		return nil, err
	}
	p.scorer = scorer
	return p, nil
}

// BuildWithScorer wires the pipeline around an externally managed scorer and
// charset. The caller keeps ownership of the scorer; Close will not touch it.
func (b *Builder) BuildWithScorer(scorer recognizer.Scorer, charset *recognizer.Charset) (*Pipeline, error) {
	if _, err := ParseStrategy(string(b.cfg.Strategy)); err != nil {
		return nil, err
	}
	if b.cfg.MinConfidence < 0 || b.cfg.MinConfidence > 1 {
		return nil, fmt.Errorf("min confidence %v outside [0,1]", b.cfg.MinConfidence)
	}

	// Word grouping is the pipeline's job here; candidate pre-grouping would
	// hide glyph boundaries from the recognizer.
	detCfg := b.cfg.Detector
	detCfg.GroupWords = false
	det, err := detector.New(detCfg)
	if err != nil {
		return nil, fmt.Errorf("init detector: %w", err)
	}

	rec, err := recognizer.New(b.cfg.Recognizer, scorer, charset)
	if err != nil {
		return nil, fmt.Errorf("init recognizer: %w", err)
	}

	return &Pipeline{cfg: b.cfg, detector: det, recognizer: rec}, nil
}

// Config returns a copy of the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Close releases the model session when the pipeline owns one.
func (p *Pipeline) Close() error {
	if p.scorer != nil {
		err := p.scorer.Close()
		p.scorer = nil
		return err
	}
	return nil
}
