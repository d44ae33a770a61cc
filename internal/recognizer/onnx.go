package recognizer

import (
	"errors"
	"fmt"
	"os"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// ONNXScorer runs a CTC recognition model through ONNX Runtime. It implements
// Scorer; Score calls are serialized with a mutex, so share one scorer or pool
// one per worker depending on throughput needs.
type ONNXScorer struct {
	session    *onnxrt.DynamicAdvancedSession
	inputName  string
	outputName string
	mu         sync.Mutex
}

// NewONNXScorer loads a recognition model and prepares an inference session.
// The model must have a single 4D image input and a single [N, T, C] or
// [T, N, C] float32 output.
func NewONNXScorer(modelPath string) (*ONNXScorer, error) {
	if modelPath == "" {
		return nil, errors.New("model path cannot be empty")
	}
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}

	if err := setONNXLibraryPath(); err != nil {
		return nil, fmt.Errorf("failed to set ONNX Runtime library path: %w", err)
	}
	if !onnxrt.IsInitialized() {
		if err := onnxrt.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX Runtime: %w", err)
		}
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get model input/output info: %w", err)
	}
	if len(inputs) != 1 {
		return nil, fmt.Errorf("expected 1 input, got %d", len(inputs))
	}
	if len(outputs) != 1 {
		return nil, fmt.Errorf("expected 1 output, got %d", len(outputs))
	}
	if len(inputs[0].Dimensions) != 4 {
		return nil, fmt.Errorf("expected 4D input tensor, got %dD", len(inputs[0].Dimensions))
	}

	session, err := onnxrt.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXScorer{
		session:    session,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
	}, nil
}

// Score runs the model over a normalized NCHW tensor for a single crop and
// returns per-timestep class scores.
func (s *ONNXScorer) Score(data []float32, width, height int) ([][]float32, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid input dimensions %dx%d", width, height)
	}
	if len(data) != 3*width*height {
		return nil, fmt.Errorf("tensor length %d does not match 3x%dx%d", len(data), height, width)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.New("scorer session is closed")
	}

	inputTensor, err := onnxrt.NewTensor(
		onnxrt.NewShape(1, 3, int64(height), int64(width)), data)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer func() { _ = inputTensor.Destroy() }()

	outputs := []onnxrt.Value{nil}
	if err := s.session.Run([]onnxrt.Value{inputTensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				_ = o.Destroy()
			}
		}
	}()

	floatTensor, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("expected float32 output tensor, got %T", outputs[0])
	}
	return reshapeScores(floatTensor.GetData(), outputs[0].GetShape())
}

// Close releases the underlying session. Safe to call more than once.
func (s *ONNXScorer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session != nil {
		if err := s.session.Destroy(); err != nil {
			return fmt.Errorf("failed to destroy session: %w", err)
		}
		s.session = nil
	}
	return nil
}

// reshapeScores copies a flat [N, T, C] batch-of-one output into a
// [timesteps][classes] matrix. 2D [T, C] outputs are accepted as well.
func reshapeScores(data []float32, shape []int64) ([][]float32, error) {
	var steps, classes int
	switch len(shape) {
	case 3:
		if shape[0] != 1 {
			return nil, fmt.Errorf("expected batch size 1, got %d", shape[0])
		}
		steps, classes = int(shape[1]), int(shape[2])
	case 2:
		steps, classes = int(shape[0]), int(shape[1])
	default:
		return nil, fmt.Errorf("unexpected output rank %d", len(shape))
	}
	if steps <= 0 || classes <= 0 || len(data) < steps*classes {
		return nil, fmt.Errorf("output shape %v does not match %d values", shape, len(data))
	}

	scores := make([][]float32, steps)
	for t := 0; t < steps; t++ {
		row := make([]float32, classes)
		copy(row, data[t*classes:(t+1)*classes])
		scores[t] = row
	}
	return scores, nil
}

// setONNXLibraryPath points onnxruntime_go at the shared library from common
// system locations, falling back to the ONNXRUNTIME_LIB environment variable.
func setONNXLibraryPath() error {
	if p := os.Getenv("ONNXRUNTIME_LIB"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("ONNXRUNTIME_LIB points to missing library: %w", err)
		}
		onnxrt.SetSharedLibraryPath(p)
		return nil
	}

	systemPaths := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, p := range systemPaths {
		if _, err := os.Stat(p); err == nil {
			onnxrt.SetSharedLibraryPath(p)
			return nil
		}
	}
	// Leave the default: onnxruntime_go falls back to its own search.
	return nil
}
