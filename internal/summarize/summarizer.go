// Package summarize orchestrates AI summarization of document text: direct
// for short inputs, chunked with a final aggregation pass for long ones.
package summarize

import (
	"context"
	"errors"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mbavault/nbauto/internal/prompt"
)

// Generator produces text from a prompt. Satisfied by ai.IGenerator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PromptService supplies and fills prompt templates. Satisfied by
// prompt.Service.
type PromptService interface {
	GetPrompt(ctx context.Context, name string, variables map[string]string) string
}

// Splitter cuts oversized input into overlapping chunks. Satisfied by
// chunking.Service.
type Splitter interface {
	SplitIntoChunks(text string, chunkSize, overlap int) ([]string, error)
}

const (
	defaultChunkThreshold = 12000
	defaultChunkSize      = 8000
	defaultChunkOverlap   = 500
)

type Config struct {
	// ChunkThreshold is the input length above which the chunked path is
	// taken. ChunkSize/ChunkOverlap parameterize the split itself.
	ChunkThreshold int
	ChunkSize      int
	ChunkOverlap   int
}

func (c Config) withDefaults() Config {
	if c.ChunkThreshold <= 0 {
		c.ChunkThreshold = defaultChunkThreshold
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.ChunkOverlap <= 0 {
		c.ChunkOverlap = defaultChunkOverlap
	}
	return c
}

// Summarizer is stateless across calls; every dependency may be nil.
// A nil generator makes every call report StateUnavailable, a nil prompt
// service sends raw content to the backend, and a nil splitter disables the
// chunked path.
type Summarizer struct {
	gen      Generator
	prompts  PromptService
	splitter Splitter
	cfg      Config
}

func New(gen Generator, prompts PromptService, splitter Splitter, cfg Config) *Summarizer {
	return &Summarizer{
		gen:      gen,
		prompts:  prompts,
		splitter: splitter,
		cfg:      cfg.withDefaults(),
	}
}

// Splitter exposes the configured chunking strategy, mainly for wiring
// checks and tests.
func (s *Summarizer) Splitter() Splitter {
	return s.splitter
}

// Summarize is SummarizeWithVariables without variables or a prompt
// override.
func (s *Summarizer) Summarize(ctx context.Context, input string) (Result, error) {
	return s.SummarizeWithVariables(ctx, input, nil, "")
}

// SummarizeWithVariables produces a summary of the effective content: the
// "content" variable when present, otherwise input. Outcomes:
//   - whitespace-only content: StateEmpty, no backend call
//   - no generator configured: StateUnavailable
//   - backend failure other than cancellation: StateEmpty (logged)
//   - cancellation: returned as the error, never downgraded
func (s *Summarizer) SummarizeWithVariables(ctx context.Context, input string, variables map[string]string, promptName string) (Result, error) {
	content := input
	if v, ok := variables["content"]; ok {
		content = v
	}
	if strings.TrimSpace(content) == "" {
		return emptyResult(), nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if s.gen == nil {
		return unavailableResult(), nil
	}
	if promptName == "" {
		promptName = prompt.FinalSummaryPrompt
	}
	if s.splitter != nil && len([]rune(content)) > s.cfg.ChunkThreshold {
		return s.summarizeChunked(ctx, content, variables, promptName)
	}
	return s.generate(ctx, promptName, variables, content)
}

// summarizeChunked splits content, summarizes each chunk in order, then runs
// one aggregation call over the joined chunk summaries. Any chunk failure
// aborts the whole flow and degrades to StateEmpty; cancellation still
// propagates.
func (s *Summarizer) summarizeChunked(ctx context.Context, content string, variables map[string]string, promptName string) (Result, error) {
	logger := logutil.GetLogger(ctx)
	chunks, err := s.splitter.SplitIntoChunks(content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if err != nil {
		logger.Error("chunk split failed", zap.Error(err))
		return emptyResult(), nil
	}
	logger.Debug("summarizing in chunks", zap.Int("chunks", len(chunks)), zap.Int("input_chars", len(content)))

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		res, err := s.generate(ctx, prompt.ChunkSummaryPrompt, variables, chunk)
		if err != nil {
			return Result{}, err
		}
		if res.State != StateSummary {
			logger.Warn("chunk summarization failed, aborting chunked flow", zap.Int("chunk", i))
			return emptyResult(), nil
		}
		parts = append(parts, res.Text)
	}
	if len(parts) == 0 {
		return emptyResult(), nil
	}
	return s.generate(ctx, promptName, variables, strings.Join(parts, "\n\n"))
}

// generate resolves the prompt for content and performs one backend call.
func (s *Summarizer) generate(ctx context.Context, promptName string, variables map[string]string, content string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	text := s.buildPrompt(ctx, promptName, variables, content)
	out, err := s.gen.Generate(ctx, text)
	if err != nil {
		if isCancellation(err) {
			return Result{}, err
		}
		logutil.GetLogger(ctx).Error("generation failed", zap.String("template", promptName), zap.Error(err))
		return emptyResult(), nil
	}
	return summaryResult(strings.TrimSpace(out)), nil
}

// buildPrompt substitutes content (and caller variables) into the named
// template. Without a prompt service the raw content is the prompt.
func (s *Summarizer) buildPrompt(ctx context.Context, promptName string, variables map[string]string, content string) string {
	if s.prompts == nil {
		return content
	}
	merged := make(map[string]string, len(variables)+1)
	for k, v := range variables {
		merged[k] = v
	}
	merged["content"] = content
	return s.prompts.GetPrompt(ctx, promptName, merged)
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
