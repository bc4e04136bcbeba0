package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders rule text with glamour, caching one renderer per width.
type MarkdownRenderer struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

// NewMarkdownRenderer returns a renderer for a glamour style name. "auto"
// picks dark or light from the terminal background.
func NewMarkdownRenderer(style string) *MarkdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &MarkdownRenderer{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns md formatted for width columns. On failure the source text
// is returned unchanged.
func (r *MarkdownRenderer) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if r == nil {
		return md
	}
	if width < 20 {
		width = 20
	}
	tr, ok := r.renderers[width]
	if !ok {
		var err error
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if r.style == "auto" {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle(r.style))
		}
		tr, err = glamour.NewTermRenderer(opts...)
		if err != nil {
			return md
		}
		r.renderers[width] = tr
	}
	out, err := tr.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
