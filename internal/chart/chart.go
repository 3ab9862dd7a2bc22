// Package chart renders engine output and price series as self-contained
// HTML charts. It is a pure consumer: nothing here feeds back into the
// return calculation.
package chart

import (
	"fmt"
	"io"
	"os"
)

// Renderer is satisfied by every go-echarts chart and page.
type Renderer interface {
	Render(w io.Writer) error
}

// WriteHTMLFile renders a chart into an HTML file at the given path.
func WriteHTMLFile(path string, r Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := r.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
