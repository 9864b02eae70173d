package document

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mbavault/nbauto/internal/vault"
)

// PDFProcessor extracts plain text from PDF course material and summarizes
// it.
type PDFProcessor struct {
	mapper     *vault.Mapper
	summarizer Summarizer
	promptName string
}

func NewPDFProcessor(mapper *vault.Mapper, summarizer Summarizer, promptName string) *PDFProcessor {
	return &PDFProcessor{mapper: mapper, summarizer: summarizer, promptName: promptName}
}

func (p *PDFProcessor) Type() string {
	return "pdf"
}

func (p *PDFProcessor) Extensions() []string {
	return []string{".pdf"}
}

func (p *PDFProcessor) Process(ctx context.Context, path string) (*Note, error) {
	content, err := extractPDFText(ctx, path)
	if err != nil {
		return nil, err
	}
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

func extractPDFText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat pdf: %w", err)
	}
	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	logger := logutil.GetLogger(ctx).With(zap.String("path", path))
	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not lose the rest of the deck.
			logger.Warn("pdf page extraction failed", zap.Int("page", i), zap.Error(err))
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()), nil
}
