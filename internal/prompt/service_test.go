package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".md"), []byte(content), 0o644))
}

func TestLoadTemplate_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "final_summary_prompt", "Summarize: {{content}}")

	s := NewFileService(dir)
	got := s.LoadTemplate(context.Background(), "final_summary_prompt")
	require.Equal(t, "Summarize: {{content}}", got)
}

func TestLoadTemplate_StripsFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "chunk_summary_prompt", "---\nauthor: someone\ntags: [notes]\n---\nChunk: {{content}}")

	s := NewFileService(dir)
	got := s.LoadTemplate(context.Background(), "chunk_summary_prompt")
	require.Equal(t, "Chunk: {{content}}", got)
}

func TestLoadTemplate_MissingFileFallsBackToDefault(t *testing.T) {
	s := NewFileService(t.TempDir())

	chunk := s.LoadTemplate(context.Background(), "chunk_summary_prompt")
	require.Equal(t, defaultChunkSummaryTemplate, chunk)

	final := s.LoadTemplate(context.Background(), "final_summary_prompt")
	require.Equal(t, defaultFinalSummaryTemplate, final)
}

func TestLoadTemplate_UnknownNameFallsBackToFinalDefault(t *testing.T) {
	s := NewFileService(t.TempDir())
	got := s.LoadTemplate(context.Background(), "no_such_prompt")
	require.Equal(t, defaultFinalSummaryTemplate, got)
}

func TestLoadTemplate_NoDirectoryConfigured(t *testing.T) {
	s := NewFileService("")
	got := s.LoadTemplate(context.Background(), "final_summary_prompt")
	require.Equal(t, defaultFinalSummaryTemplate, got)
}

func TestSubstitute(t *testing.T) {
	s := NewFileService("")
	tests := []struct {
		name      string
		template  string
		variables map[string]string
		want      string
	}{
		{
			name:      "basic substitution",
			template:  "Course {{course}}: {{title}}",
			variables: map[string]string{"course": "Finance", "title": "NPV"},
			want:      "Course Finance: NPV",
		},
		{
			name:      "whitespace inside braces",
			template:  "{{ course }} and {{course}}",
			variables: map[string]string{"course": "Strategy"},
			want:      "Strategy and Strategy",
		},
		{
			name:      "missing variable stays literal",
			template:  "Hello {{name}}",
			variables: map[string]string{"course": "unused here"},
			want:      "Hello {{name}}",
		},
		{
			name:      "extra variables ignored",
			template:  "Just {{content}}",
			variables: map[string]string{"content": "text", "spare": "x", "another": "y"},
			want:      "Just text",
		},
		{
			name:      "no recursive substitution",
			template:  "{{outer}}",
			variables: map[string]string{"outer": "{{inner}}", "inner": "nope"},
			want:      "{{inner}}",
		},
		{
			name:      "empty variables returns template unchanged",
			template:  "Keep {{this}} as is",
			variables: nil,
			want:      "Keep {{this}} as is",
		},
		{
			name:      "multilingual values pass through",
			template:  "Titel: {{title}}, 课程: {{course}}",
			variables: map[string]string{"title": "Unternehmensführung", "course": "企业战略"},
			want:      "Titel: Unternehmensführung, 课程: 企业战略",
		},
		{
			name:      "repeated placeholder replaced everywhere",
			template:  "{{x}} {{x}} {{ x }}",
			variables: map[string]string{"x": "v"},
			want:      "v v v",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, s.Substitute(tt.template, tt.variables))
		})
	}
}

func TestGetPrompt_ComposesLoadAndSubstitute(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, "final_summary_prompt", "---\nkind: final\n---\n{{title}}: {{content}}")

	s := NewFileService(dir)
	got := s.GetPrompt(context.Background(), "final_summary_prompt", map[string]string{
		"title":   "Lecture 3",
		"content": "body text",
	})
	require.Equal(t, "Lecture 3: body text", got)
}

func TestLoadAndSubstitute_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.md")
	require.NoError(t, os.WriteFile(path, []byte("Custom {{v}}"), 0o644))

	s := NewFileService("")
	require.Equal(t, "Custom 1", s.LoadAndSubstitute(context.Background(), path, map[string]string{"v": "1"}))
}

func TestLoadAndSubstitute_MissingFileReturnsEmpty(t *testing.T) {
	s := NewFileService("")
	got := s.LoadAndSubstitute(context.Background(), filepath.Join(t.TempDir(), "absent.md"), nil)
	require.Equal(t, "", got)
}

func TestStripFrontmatter(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no frontmatter", in: "plain text", want: "plain text"},
		{name: "simple block", in: "---\na: 1\n---\nbody", want: "body"},
		{name: "crlf block", in: "---\r\na: 1\r\n---\r\nbody", want: "body"},
		{name: "unterminated block left alone", in: "---\na: 1\nbody", want: "---\na: 1\nbody"},
		{name: "dashes mid-document untouched", in: "text\n---\nmore", want: "text\n---\nmore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, StripFrontmatter(tt.in))
		})
	}
}
