// Package document turns source files (PDF, video transcripts, Markdown)
// into structured notes with an AI-generated summary.
package document

import (
	"context"

	"github.com/mbavault/nbauto/internal/summarize"
	"github.com/mbavault/nbauto/internal/vault"
)

// Summarizer is the slice of the summarize package the processors need.
type Summarizer interface {
	SummarizeWithVariables(ctx context.Context, input string, variables map[string]string, promptName string) (summarize.Result, error)
}

// Processor extracts text and metadata from one document format and builds
// the resulting note.
type Processor interface {
	Type() string
	Extensions() []string
	Process(ctx context.Context, path string) (*Note, error)
}

// buildVariables assembles the variable map handed to the summarizer's
// prompt templates. "content" is always present; the rest is best-effort
// metadata.
func buildVariables(meta vault.Metadata, docType, source, remotePath, frontmatter, content string) map[string]string {
	vars := map[string]string{
		"content": content,
		"title":   meta.Title,
		"type":    docType,
		"source":  source,
	}
	if meta.Program != "" {
		vars["program"] = meta.Program
	}
	if meta.Course != "" {
		vars["course"] = meta.Course
	}
	if meta.Class != "" {
		vars["class"] = meta.Class
	}
	if remotePath != "" {
		vars["onedrivePath"] = remotePath
	}
	if frontmatter != "" {
		vars["yamlfrontmatter"] = frontmatter
	}
	return vars
}

// summarizeContent runs the summarizer when one is wired; without one the
// note is built with an unavailable summary.
func summarizeContent(ctx context.Context, s Summarizer, content string, vars map[string]string, promptName string) (summarize.Result, error) {
	if s == nil {
		return summarize.Result{State: summarize.StateUnavailable}, nil
	}
	return s.SummarizeWithVariables(ctx, content, vars, promptName)
}
