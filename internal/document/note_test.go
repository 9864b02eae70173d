package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbavault/nbauto/internal/summarize"
)

func TestNoteRender_WithSummary(t *testing.T) {
	n := &Note{
		Meta: NoteMeta{
			Title:        "Lecture 1",
			Type:         "pdf",
			Program:      "MBA",
			Course:       "Finance",
			Source:       "/vault/MBA/Finance/lecture1.pdf",
			OneDrivePath: "/remote/MBA/Finance/lecture1.pdf",
		},
		Body:    "body text",
		Summary: summarize.Result{State: summarize.StateSummary, Text: "the summary"},
	}
	out, err := n.Render()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(out, "---\n"))
	require.Contains(t, out, "title: Lecture 1")
	require.Contains(t, out, "course: Finance")
	require.Contains(t, out, "onedrive_path: /remote/MBA/Finance/lecture1.pdf")
	require.Contains(t, out, "# Lecture 1")
	require.Contains(t, out, "## AI Summary\n\nthe summary")
	require.Contains(t, out, "## Content\n\nbody text")
}

func TestNoteRender_UnavailableSummaryOmitsSection(t *testing.T) {
	n := &Note{
		Meta:    NoteMeta{Title: "T", Type: "markdown", Source: "x.md"},
		Body:    "body",
		Summary: summarize.Result{State: summarize.StateUnavailable},
	}
	out, err := n.Render()
	require.NoError(t, err)
	require.NotContains(t, out, "AI Summary")
	require.Contains(t, out, "body")
}

func TestNoteRender_EmptySummaryOmitsSection(t *testing.T) {
	n := &Note{
		Meta:    NoteMeta{Title: "T", Type: "markdown", Source: "x.md"},
		Body:    "body",
		Summary: summarize.Result{State: summarize.StateEmpty},
	}
	out, err := n.Render()
	require.NoError(t, err)
	require.NotContains(t, out, "AI Summary")
}

func TestNoteRender_OptionalMetaOmitted(t *testing.T) {
	n := &Note{Meta: NoteMeta{Title: "T", Type: "pdf", Source: "x.pdf"}}
	out, err := n.Render()
	require.NoError(t, err)
	require.NotContains(t, out, "program:")
	require.NotContains(t, out, "course:")
	require.NotContains(t, out, "onedrive_path:")
}
