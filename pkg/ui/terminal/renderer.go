// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/ui/display"
	"github.com/arthur-debert/macgen/pkg/ui/styles"
	"github.com/charmbracelet/glamour"
)

var markers = map[string]string{
	"Written":  "+",
	"Appended": ">",
	"Skipped":  "=",
}

// Renderer writes styled output
type Renderer struct {
	output io.Writer
	// Width wraps rendered markdown; zero leaves glamour's default
	Width int
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	summary, ok := display.Convert(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	var b strings.Builder
	b.WriteString(styles.Render("Success", summary.Title))
	b.WriteString("\n")
	for _, section := range summary.Sections {
		b.WriteString(styles.Render("Heading", section.Title))
		b.WriteString("\n")
		for _, item := range section.Items {
			if item.Key != "" {
				b.WriteString("  " + styles.Render("Label", item.Key) + styles.Render("Path", item.Value) + "\n")
				continue
			}
			marker := markers[section.Style]
			if marker == "" {
				marker = "-"
			}
			b.WriteString("  " + styles.Render(section.Style, marker) + " " + styles.Render("Path", item.Value) + "\n")
		}
	}
	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}

	if summary.Markdown != "" {
		_, err := io.WriteString(r.output, r.markdown(summary.Markdown))
		return err
	}
	return nil
}

// markdown renders md with glamour, falling back to the raw text
func (r *Renderer) markdown(md string) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// RenderError renders an error and its details
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error:")+" "+err.Error()); werr != nil {
		return werr
	}
	for _, line := range errors.DetailLines(err) {
		if _, werr := fmt.Fprintln(r.output, styles.Render("Detail", line)); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Muted", msg))
	return err
}
