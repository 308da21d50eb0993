// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	summary, ok := display.Convert(result)
	if !ok {
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}

	if _, err := fmt.Fprintln(r.output, summary.Title); err != nil {
		return err
	}
	for _, section := range summary.Sections {
		if _, err := fmt.Fprintf(r.output, "\n%s:\n", section.Title); err != nil {
			return err
		}
		for _, item := range section.Items {
			var err error
			if item.Key != "" {
				_, err = fmt.Fprintf(r.output, "  %-20s %s\n", item.Key, item.Value)
			} else {
				_, err = fmt.Fprintf(r.output, "  %s\n", item.Value)
			}
			if err != nil {
				return err
			}
		}
	}
	if summary.Markdown != "" {
		_, err := fmt.Fprintf(r.output, "\n%s", summary.Markdown)
		return err
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	if _, werr := fmt.Fprintf(r.output, "Error: %v\n", err); werr != nil {
		return werr
	}
	for _, line := range errors.DetailLines(err) {
		if _, werr := fmt.Fprintf(r.output, "  %s\n", line); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
