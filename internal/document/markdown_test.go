package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbavault/nbauto/internal/summarize"
	"github.com/mbavault/nbauto/internal/vault"
)

type stubSummarizer struct {
	lastInput string
	lastVars  map[string]string
	lastName  string
	result    summarize.Result
}

func (s *stubSummarizer) SummarizeWithVariables(ctx context.Context, input string, variables map[string]string, promptName string) (summarize.Result, error) {
	s.lastInput = input
	s.lastVars = variables
	s.lastName = promptName
	return s.result, nil
}

func TestSplitFrontmatter(t *testing.T) {
	fm, body := splitFrontmatter("---\ntitle: Hello\ncourse: Ops\n---\n# Heading\n\ntext")
	require.Equal(t, "title: Hello\ncourse: Ops", fm)
	require.Equal(t, "# Heading\n\ntext", body)

	fm, body = splitFrontmatter("no frontmatter here")
	require.Empty(t, fm)
	require.Equal(t, "no frontmatter here", body)
}

func TestFirstHeading(t *testing.T) {
	require.Equal(t, "Main Title", firstHeading("intro\n\n# Main Title\n\n## Sub"))
	require.Empty(t, firstHeading("## only a subheading\n\ntext"))
	require.Empty(t, firstHeading("plain text"))
}

func TestMarkdownProcessor_Process(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "MBA", "Strategy")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "five-forces.md")
	content := "---\ntitle: Five Forces\n---\nPorter's framework for industry analysis."
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	stub := &stubSummarizer{result: summarize.Result{State: summarize.StateSummary, Text: "summary text"}}
	p := NewMarkdownProcessor(vault.NewMapper(root, "/remote"), stub, "")

	note, err := p.Process(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, "Five Forces", note.Meta.Title)
	require.Equal(t, "markdown", note.Meta.Type)
	require.Equal(t, "MBA", note.Meta.Program)
	require.Equal(t, "Strategy", note.Meta.Course)
	require.Equal(t, "/remote/MBA/Strategy/five-forces.md", note.Meta.OneDrivePath)
	require.Equal(t, summarize.StateSummary, note.Summary.State)

	require.Equal(t, "Porter's framework for industry analysis.", stub.lastInput)
	require.Equal(t, "Porter's framework for industry analysis.", stub.lastVars["content"])
	require.Equal(t, "title: Five Forces", stub.lastVars["yamlfrontmatter"])
	require.Equal(t, "Strategy", stub.lastVars["course"])
}

func TestMarkdownProcessor_TitleFromHeadingWhenNoFrontmatter(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Heading Title\n\nsome text"), 0o644))

	stub := &stubSummarizer{result: summarize.Result{State: summarize.StateEmpty}}
	p := NewMarkdownProcessor(vault.NewMapper(root, ""), stub, "")

	note, err := p.Process(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "Heading Title", note.Meta.Title)
}

func TestMarkdownProcessor_NilSummarizerYieldsUnavailable(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

	p := NewMarkdownProcessor(vault.NewMapper(root, ""), nil, "")
	note, err := p.Process(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, summarize.StateUnavailable, note.Summary.State)
	require.False(t, note.Summary.Available())
}
