// Package prompt loads named prompt templates from a directory and fills in
// {{variable}} placeholders. Load failures never surface to callers; a
// built-in default template is substituted instead.
package prompt

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// Service is the prompting capability consumed by the summarizer.
type Service interface {
	LoadTemplate(ctx context.Context, name string) string
	Substitute(template string, variables map[string]string) string
	GetPrompt(ctx context.Context, name string, variables map[string]string) string
	LoadAndSubstitute(ctx context.Context, path string, variables map[string]string) string
}

// FileService resolves templates as <dir>/<name>.md and falls back to the
// built-in defaults when the file is missing or unreadable.
type FileService struct {
	dir string
}

func NewFileService(dir string) *FileService {
	return &FileService{dir: dir}
}

// LoadTemplate returns the template body for name. It never fails: on any
// load error it logs and returns a built-in default instead.
func (s *FileService) LoadTemplate(ctx context.Context, name string) string {
	logger := logutil.GetLogger(ctx).With(zap.String("template", name))
	if s.dir != "" && name != "" {
		path := filepath.Join(s.dir, name+".md")
		data, err := os.ReadFile(path)
		if err == nil {
			return StripFrontmatter(string(data))
		}
		if !os.IsNotExist(err) {
			logger.Warn("template read failed, using default", zap.String("path", path), zap.Error(err))
		}
	}
	tpl, known := defaultTemplate(name)
	if !known {
		logger.Warn("unknown template name, using final summary default")
	}
	return tpl
}

var placeholderRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_\-]+)\s*\}\}`)

// Substitute replaces every {{key}} placeholder with its value from
// variables. A single pass, no recursion: values containing placeholders are
// inserted literally. Placeholders without a matching key stay unchanged.
func (s *FileService) Substitute(template string, variables map[string]string) string {
	if len(variables) == 0 {
		return template
	}
	return placeholderRegex.ReplaceAllStringFunc(template, func(token string) string {
		match := placeholderRegex.FindStringSubmatch(token)
		if len(match) < 2 {
			return token
		}
		if value, ok := variables[match[1]]; ok {
			return value
		}
		return token
	})
}

// GetPrompt composes LoadTemplate and Substitute.
func (s *FileService) GetPrompt(ctx context.Context, name string, variables map[string]string) string {
	return s.Substitute(s.LoadTemplate(ctx, name), variables)
}

// LoadAndSubstitute reads a template from an explicit file path, bypassing
// named-template resolution. A missing or unreadable file yields "".
func (s *FileService) LoadAndSubstitute(ctx context.Context, path string, variables map[string]string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logutil.GetLogger(ctx).Error("template file read failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return s.Substitute(StripFrontmatter(string(data)), variables)
}

// StripFrontmatter removes a leading YAML frontmatter block ("--- ... ---")
// from text, returning the remainder.
func StripFrontmatter(text string) string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return text
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return text
	}
	after := rest[end+len("\n---"):]
	after = strings.TrimPrefix(after, "\n")
	return after
}
