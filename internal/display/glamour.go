package display

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Glamour renders markdown with the full CommonMark renderer. It ignores the
// constrained dialect and is offered for side-by-side comparison only.
func Glamour(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create glamour renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
