package recognizer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Charset maps model class indices to output tokens. Index 0 is the blank
// symbol and never maps to a token: class i corresponds to Tokens[i-1].
type Charset struct {
	tokens []string
	index  map[string]int
}

// NewCharset builds a charset from an ordered token list. Duplicate tokens
// keep their first index.
func NewCharset(tokens []string) (*Charset, error) {
	if len(tokens) == 0 {
		return nil, errors.New("charset is empty")
	}
	idx := make(map[string]int, len(tokens))
	for i, t := range tokens {
		if _, ok := idx[t]; !ok {
			idx[t] = i + 1
		}
	}
	return &Charset{tokens: tokens, index: idx}, nil
}

// LoadCharset reads a dictionary file where each non-empty line is one
// token, in class order. Whitespace is trimmed and a UTF-8 BOM removed.
func LoadCharset(path string) (*Charset, error) {
	if path == "" {
		return nil, errors.New("dictionary path cannot be empty")
	}
	f, err := os.Open(path) //nolint:gosec // G304: user-provided dictionary path is expected
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	tokens := make([]string, 0, 512)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if line == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading dictionary: %w", err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("dictionary is empty: %s", path)
	}
	return NewCharset(tokens)
}

// Size returns the number of tokens, excluding the blank.
func (c *Charset) Size() int { return len(c.tokens) }

// Token returns the token for a class index, or "" for the blank or an
// out-of-range index.
func (c *Charset) Token(class int) string {
	if c == nil || class <= 0 || class > len(c.tokens) {
		return ""
	}
	return c.tokens[class-1]
}

// Decode concatenates the tokens for a collapsed index sequence.
func (c *Charset) Decode(indices []int) string {
	var sb strings.Builder
	for _, idx := range indices {
		sb.WriteString(c.Token(idx))
	}
	return sb.String()
}
