package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"learnscript/pkg/lsltypes"
)

// MarkdownWordWrap is the column glamour wraps rendered markdown at.
const MarkdownWordWrap = 80

// MarkdownRenderer turns result entries into terminal-rendered markdown.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer using style ("dark", "light",
// "notty", ...). An empty style selects glamour's auto detection; if that
// fails the notty style is used.
func NewMarkdownRenderer(style string) (*MarkdownRenderer, error) {
	var opts []glamour.TermRendererOption
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle(), glamour.WithEnvironmentConfig())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}
	opts = append(opts, glamour.WithWordWrap(MarkdownWordWrap))

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		r, err = glamour.NewTermRenderer(glamour.WithStylePath("notty"), glamour.WithWordWrap(MarkdownWordWrap))
		if err != nil {
			return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
		}
	}
	return &MarkdownRenderer{renderer: r}, nil
}

// Render renders entries as a markdown document.
func (m *MarkdownRenderer) Render(entries []lsltypes.ResultEntry) (string, error) {
	out, err := m.renderer.Render(ResultsMarkdown(entries))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// ResultsMarkdown formats entries as a markdown list, one item per entry.
// Errors are emphasized and ignored lines are shown as code.
func ResultsMarkdown(entries []lsltypes.ResultEntry) string {
	var b strings.Builder
	b.WriteString("# Results\n\n")
	if len(entries) == 0 {
		b.WriteString("_No results._\n")
		return b.String()
	}
	for _, e := range entries {
		switch e.Status {
		case lsltypes.StatusError:
			fmt.Fprintf(&b, "- **line %d**: %s\n", e.Line, e.Message)
		case lsltypes.StatusIgnored:
			fmt.Fprintf(&b, "- line %d: `%s`\n", e.Line, e.Source)
		default:
			fmt.Fprintf(&b, "- line %d: %s\n", e.Line, e.Message)
		}
	}
	return b.String()
}
