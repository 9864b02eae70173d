package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mbavault/nbauto/internal/summarize"
)

// NoteMeta becomes the YAML frontmatter of the generated note.
type NoteMeta struct {
	Title        string `yaml:"title"`
	Type         string `yaml:"type"`
	Program      string `yaml:"program,omitempty"`
	Course       string `yaml:"course,omitempty"`
	Class        string `yaml:"class,omitempty"`
	Source       string `yaml:"source"`
	OneDrivePath string `yaml:"onedrive_path,omitempty"`
}

// Note is a processed document ready to be rendered as Markdown.
type Note struct {
	Meta    NoteMeta
	Body    string
	Summary summarize.Result
}

// Render produces the Markdown note: frontmatter, title heading, an AI
// summary section when one was produced, then the extracted body. An
// unavailable or empty summary simply omits the section.
func (n *Note) Render() (string, error) {
	meta, err := yaml.Marshal(n.Meta)
	if err != nil {
		return "", fmt.Errorf("marshal note frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(meta)
	sb.WriteString("---\n\n")
	sb.WriteString("# " + n.Meta.Title + "\n")
	if n.Summary.State == summarize.StateSummary && n.Summary.Text != "" {
		sb.WriteString("\n## AI Summary\n\n")
		sb.WriteString(n.Summary.Text + "\n")
	}
	body := strings.TrimSpace(n.Body)
	if body != "" {
		sb.WriteString("\n## Content\n\n")
		sb.WriteString(body + "\n")
	}
	return sb.String(), nil
}
