package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/macgen/cmd/macgen"
	"github.com/arthur-debert/macgen/pkg/ui"
	"github.com/arthur-debert/macgen/pkg/ui/styles"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := macgen.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		reportError(rootCmd.PersistentFlags().Lookup("format").Value.String(), err)
		os.Exit(1)
	}
}

// reportError writes err to stderr in the requested output format, falling
// back to a styled line when the format itself is the problem.
func reportError(format string, err error) {
	f, parseErr := ui.ParseFormat(format)
	if parseErr == nil {
		if renderer, rErr := ui.NewRenderer(f, os.Stderr); rErr == nil && renderer.RenderError(err) == nil {
			return
		}
	}
	errorStyle := styles.GetStyle("Error")
	fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
}
