package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	appErr "github.com/mbavault/nbauto/internal/pkg/errors"
	"github.com/mbavault/nbauto/internal/vault"
)

var transcriptExtensions = []string{".vtt", ".srt", ".txt"}

// VideoProcessor notes recorded lectures. The video itself is never decoded;
// a sibling transcript file (<name>.vtt/.srt/.txt) supplies the text.
type VideoProcessor struct {
	mapper     *vault.Mapper
	summarizer Summarizer
	promptName string
}

func NewVideoProcessor(mapper *vault.Mapper, summarizer Summarizer, promptName string) *VideoProcessor {
	return &VideoProcessor{mapper: mapper, summarizer: summarizer, promptName: promptName}
}

func (p *VideoProcessor) Type() string {
	return "video"
}

func (p *VideoProcessor) Extensions() []string {
	return []string{".mp4", ".mov", ".mkv", ".webm", ".avi"}
}

func (p *VideoProcessor) Process(ctx context.Context, path string) (*Note, error) {
	transcriptPath, err := findTranscript(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	content := parseTranscript(string(data))

	meta, err := p.mapper.Detect(path)
	if err != nil {
		return nil, err
	}
	remote, err := p.mapper.RemotePath(path)
	if err != nil {
		return nil, err
	}

	vars := buildVariables(meta, p.Type(), path, remote, "", content)
	summary, err := summarizeContent(ctx, p.summarizer, content, vars, p.promptName)
	if err != nil {
		return nil, err
	}
	return &Note{
		Meta: NoteMeta{
			Title:        meta.Title,
			Type:         p.Type(),
			Program:      meta.Program,
			Course:       meta.Course,
			Class:        meta.Class,
			Source:       path,
			OneDrivePath: remote,
		},
		Body:    content,
		Summary: summary,
	}, nil
}

// findTranscript looks for a transcript next to the video file, trying the
// known extensions in order.
func findTranscript(videoPath string) (string, error) {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	for _, ext := range transcriptExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no transcript found for %s: %w", videoPath, appErr.ErrNotFound)
}

// parseTranscript extracts spoken text from WebVTT/SRT content, dropping
// headers, cue numbers and timestamp lines. Plain text passes through.
func parseTranscript(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	var last string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "WEBVTT" || strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			continue
		}
		if strings.Contains(trimmed, "-->") {
			continue
		}
		if isCueNumber(trimmed) {
			continue
		}
		// Consecutive duplicate cues are common in auto-generated captions.
		if trimmed == last {
			continue
		}
		out = append(out, trimmed)
		last = trimmed
	}
	return strings.Join(out, "\n")
}

func isCueNumber(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(line) > 0
}
