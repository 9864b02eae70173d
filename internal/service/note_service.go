package service

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/mbavault/nbauto/internal/document"
	appErr "github.com/mbavault/nbauto/internal/pkg/errors"
	"github.com/mbavault/nbauto/internal/vault"
)

// NoteService routes each source document to the processor for its
// extension and writes the rendered note into the output tree, mirroring
// the document's position in the vault.
type NoteService struct {
	mapper     *vault.Mapper
	outputDir  string
	processors map[string]document.Processor
}

func NewNoteService(mapper *vault.Mapper, outputDir string, processors ...document.Processor) *NoteService {
	byExt := make(map[string]document.Processor)
	for _, p := range processors {
		for _, ext := range p.Extensions() {
			byExt[strings.ToLower(ext)] = p
		}
	}
	return &NoteService{
		mapper:     mapper,
		outputDir:  outputDir,
		processors: byExt,
	}
}

// ProcessFile builds and writes the note for one document. Returns the note
// path, or ErrUnsupported when no processor handles the extension.
func (s *NoteService) ProcessFile(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	processor, ok := s.processors[ext]
	if !ok {
		return "", fmt.Errorf("no processor for %s: %w", ext, appErr.ErrUnsupported)
	}
	logger := logutil.GetLogger(ctx).With(zap.String("path", path), zap.String("type", processor.Type()))

	note, err := processor.Process(ctx, path)
	if err != nil {
		return "", fmt.Errorf("process %s: %w", path, err)
	}
	if !note.Summary.Available() {
		logger.Warn("summarization unavailable, writing note without summary")
	}
	rendered, err := note.Render()
	if err != nil {
		return "", err
	}
	outPath, err := s.notePath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	logger.Info("note written", zap.String("note", outPath), zap.String("summary", note.Summary.State.String()))
	return outPath, nil
}

// ProcessDir walks dir and processes every supported document. Unsupported
// files are skipped silently; failures are logged and do not stop the walk.
// Cancellation aborts it.
func (s *NoteService) ProcessDir(ctx context.Context, dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if entry.IsDir() {
			return nil
		}
		if _, perr := s.ProcessFile(ctx, path); perr != nil {
			if appErr.IsUnsupported(perr) {
				return nil
			}
			logutil.GetLogger(ctx).Error("document processing failed", zap.String("path", path), zap.Error(perr))
		}
		return nil
	})
}

// notePath mirrors the vault-relative location under the output directory,
// with the extension swapped for .md.
func (s *NoteService) notePath(sourcePath string) (string, error) {
	rel, err := filepath.Rel(s.mapper.Root(), filepath.Clean(sourcePath))
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("source %s is outside the vault: %w", sourcePath, appErr.ErrInvalid)
	}
	ext := filepath.Ext(rel)
	return filepath.Join(s.outputDir, strings.TrimSuffix(rel, ext)+".md"), nil
}
