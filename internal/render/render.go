// Package render turns recipe markdown into styled terminal output.
package render

import (
	"github.com/charmbracelet/glamour"
)

// Markdown renders markdown source for the terminal, word-wrapped to the
// given width. Falls back to the plain source if rendering is not possible.
func Markdown(src string, width int) string {
	if width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return src
	}

	rendered, err := renderer.Render(src)
	if err != nil {
		return src
	}

	return rendered
}
