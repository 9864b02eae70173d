package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/mbavault/nbauto/internal/vault"
)

// MarkdownProcessor re-notes existing Markdown files: it keeps the body,
// parses the frontmatter for metadata overrides and adds an AI summary.
type MarkdownProcessor struct {
	mapper     *vault.Mapper
	summarizer Summarizer
	promptName string
}

func NewMarkdownProcessor(mapper *vault.Mapper, summarizer Summarizer, promptName string) *MarkdownProcessor {
	return &MarkdownProcessor{mapper: mapper, summarizer: summarizer, promptName: promptName}
}

func (p *MarkdownProcessor) Type() string {
	return "markdown"
}

func (p *MarkdownProcessor) Extensions() []string {
	return []string{".md", ".markdown", ".txt", ".html", ".htm"}
}

func (p *MarkdownProcessor) Process(ctx context.Context, path string) (*Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown file: %w", err)
	}
	meta, err := p.mapper.Detect(path)
	if err != nil {
		return nil, err
	}
	remote, err := p.mapper.RemotePath(path)
	if err != nil {
		return nil, err
	}

	frontmatter, body := splitFrontmatter(string(data))
	if title := frontmatterTitle(frontmatter); title != "" {
		meta.Title = title
	} else if heading := firstHeading(body); heading != "" {
		meta.Title = heading
	}

	vars := buildVariables(meta, p.Type(), path, remote, frontmatter, body)
	summary, err := summarizeContent(ctx, p.summarizer, body, vars, p.promptName)
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
		Body:    body,
		Summary: summary,
	}, nil
}

// splitFrontmatter separates a leading YAML frontmatter block from the body.
// The returned frontmatter excludes the --- fences.
func splitFrontmatter(raw string) (frontmatter, body string) {
	normalized := strings.ReplaceAll(raw, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", raw
	}
	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return "", raw
	}
	frontmatter = rest[:end]
	body = strings.TrimPrefix(rest[end+len("\n---"):], "\n")
	return frontmatter, body
}

func frontmatterTitle(frontmatter string) string {
	if frontmatter == "" {
		return ""
	}
	var fields struct {
		Title string `yaml:"title"`
	}
	if err := yaml.Unmarshal([]byte(frontmatter), &fields); err != nil {
		return ""
	}
	return strings.TrimSpace(fields.Title)
}

// firstHeading returns the text of the first level-1 heading in the
// document, if any.
func firstHeading(markdown string) string {
	source := []byte(markdown)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))
	var title string
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := node.(*ast.Heading); ok && heading.Level == 1 {
			title = string(heading.Text(source))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(title)
}
