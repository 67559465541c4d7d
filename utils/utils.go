package utils

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// RenderMarkdownPreview reads the note at path and returns its styled
// terminal rendering. Errors come back as display strings since the
// result lands directly in a preview pane.
func RenderMarkdownPreview(
	path string,
	w, h int,
) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return "Error reading file"
	}

	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
		glamour.WithColorProfile(termenv.ANSI256),
	)

	markdown, err := r.Render(string(content))
	if err != nil {
		return "Error rendering markdown"
	}

	return markdown
}
