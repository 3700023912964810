// Package reference carries the built-in language documentation shown by
// the docs command.
package reference

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed language.md
var languageMD string

// Markdown returns the raw language reference document.
func Markdown() string { return languageMD }

// Render formats the reference for the terminal at the given wrap width.
func Render(width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(languageMD)
}
