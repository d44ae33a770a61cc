package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/inkline/internal/pipeline"
)

func captureCommand() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	return cmd, buf
}

func sampleResults() []fileResult {
	return []fileResult{
		{
			File: "a.png",
			Result: pipeline.Result{
				Text:       "hi go",
				Confidence: 0.9,
				Spans: []pipeline.Span{
					{Text: "hi", Confidence: 0.92, Box: [4]pipeline.BoxPoint{
						{X: 20, Y: 20}, {X: 70, Y: 20}, {X: 70, Y: 44}, {X: 20, Y: 44},
					}},
					{Text: "go", Confidence: 0.88, Box: [4]pipeline.BoxPoint{
						{X: 160, Y: 20}, {X: 208, Y: 20}, {X: 208, Y: 44}, {X: 160, Y: 44},
					}},
				},
			},
		},
	}
}

func TestWriteResults_Text(t *testing.T) {
	cmd, buf := captureCommand()
	require.NoError(t, writeResults(cmd, sampleResults(), outputFormatText))
	assert.Equal(t, "hi go\n", buf.String())
}

func TestWriteResults_TextMultipleFiles(t *testing.T) {
	cmd, buf := captureCommand()
	results := append(sampleResults(), fileResult{File: "b.png", Result: pipeline.Result{Text: "ok"}})
	require.NoError(t, writeResults(cmd, results, outputFormatText))
	assert.Contains(t, buf.String(), "a.png:")
	assert.Contains(t, buf.String(), "b.png:")
	assert.Contains(t, buf.String(), "hi go")
}

func TestWriteResults_JSON(t *testing.T) {
	cmd, buf := captureCommand()
	require.NoError(t, writeResults(cmd, sampleResults(), outputFormatJSON))

	var decoded []fileResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a.png", decoded[0].File)
	assert.Equal(t, "hi go", decoded[0].Result.Text)
	require.Len(t, decoded[0].Result.Spans, 2)
	assert.InDelta(t, 20.0, decoded[0].Result.Spans[0].Box[0].X, 1e-9)
}

func TestWriteResults_YAML(t *testing.T) {
	cmd, buf := captureCommand()
	require.NoError(t, writeResults(cmd, sampleResults(), outputFormatYAML))

	var decoded []fileResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "hi go", decoded[0].Result.Text)
	assert.Len(t, decoded[0].Result.Spans, 2)
}

func TestImageCmd_NoArgs(t *testing.T) {
	err := imageCmd.RunE(imageCmd, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "no input files"))
}
