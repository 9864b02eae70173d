// Package chunking splits long text into overlapping fixed-size windows so
// oversized inputs fit within a generation backend's context limit.
package chunking

import (
	"fmt"
	"strings"
)

// Service is the chunking capability consumed by the summarizer.
type Service interface {
	SplitIntoChunks(text string, chunkSize, overlap int) ([]string, error)
	EstimateTokenCount(text string) int
}

type Chunker struct{}

func NewChunker() *Chunker {
	return &Chunker{}
}

// SplitIntoChunks cuts text into windows of at most chunkSize characters.
// Every chunk after the first starts overlap characters before the end of
// the previous one, so the tail of chunk i equals the head of chunk i+1.
// Invariant: 0 <= overlap < chunkSize.
func (c *Chunker) SplitIntoChunks(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("overlap must not be negative, got %d", overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("overlap %d must be smaller than chunk size %d", overlap, chunkSize)
	}
	if text == "" {
		return []string{}, nil
	}
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}, nil
	}
	step := chunkSize - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}

// EstimateTokenCount approximates the token count of text at roughly four
// characters per token. Whitespace-only text counts as zero.
func (c *Chunker) EstimateTokenCount(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	n := len([]rune(text))
	tokens := (n + 3) / 4
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
