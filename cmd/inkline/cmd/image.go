package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/inkline/internal/pipeline"
)

const (
	outputFormatText = "text"
	outputFormatJSON = "json"
	outputFormatYAML = "yaml"
)

// fileResult pairs one input file with its OCR result for structured output.
type fileResult struct {
	File   string          `json:"file" yaml:"file"`
	Result pipeline.Result `json:"result" yaml:"result"`
}

// imageCmd represents the image command.
var imageCmd = &cobra.Command{
	Use:   "image [files...]",
	Short: "Run OCR over one or more page images",
	Long: `Process image files and print the recognized text.

Supported formats: JPEG, PNG, GIF, BMP, TIFF

Examples:
  inkline image scan.png
  inkline image *.jpg --format json
  inkline image note.png --handwriting --grouping dilation`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no input files provided")
		}

		cfg := GetConfig()
		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}
		switch format {
		case outputFormatText, outputFormatJSON, outputFormatYAML:
		default:
			return fmt.Errorf("invalid output format %q (must be text, json or yaml)", format)
		}

		pl, err := cfg.PipelineBuilder().Build()
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}
		defer func() { _ = pl.Close() }()

		results := make([]fileResult, 0, len(args))
		for _, path := range args {
			img, err := imaging.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			results = append(results, fileResult{
				File:   path,
				Result: pl.Run(cmd.Context(), img),
			})
		}

		return writeResults(cmd, results, format)
	},
}

func writeResults(cmd *cobra.Command, results []fileResult, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case outputFormatYAML:
		enc := yaml.NewEncoder(out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(results)
	default:
		for _, r := range results {
			if len(results) > 1 {
				fmt.Fprintf(out, "%s:\n", r.File)
			}
			fmt.Fprintln(out, r.Result.Text)
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(imageCmd)

	imageCmd.Flags().String("format", "text", "output format (text, json, yaml)")
	imageCmd.Flags().Float64("min-confidence", 0.3, "drop glyphs recognized below this confidence")
	imageCmd.Flags().String("grouping", "line_word", "word grouping strategy (none, line_word, dilation)")
	imageCmd.Flags().Bool("handwriting", false, "use detection thresholds tuned for handwriting")

	_ = viper.BindPFlag("output.format", imageCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("pipeline.min_confidence", imageCmd.Flags().Lookup("min-confidence"))
	_ = viper.BindPFlag("pipeline.strategy", imageCmd.Flags().Lookup("grouping"))
	_ = viper.BindPFlag("pipeline.handwriting", imageCmd.Flags().Lookup("handwriting"))
}
