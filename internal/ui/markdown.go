package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

var markdownCodeTheme string

// ConfigureMarkdownCodeTheme sets the Chroma theme for rendered code blocks.
func ConfigureMarkdownCodeTheme(theme string) {
	markdownCodeTheme = theme
}

// RenderMarkdown renders markdown content for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	if markdownCodeTheme != "" {
		opts = append(opts, glamour.WithStylePath(markdownCodeTheme))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single one.
	rendered = strings.TrimRight(rendered, "\n") + "\n"
	return rendered, nil
}
