// Package layout defines the contract with the layout-extractor
// collaborator: the engine consumes reading-order text and per-page
// detected table grids, never the source file itself.
package layout

import "context"

// Grid is one detected table as rows of cell strings. A cell may contain
// embedded line breaks when the physical cell spans logical sub-rows; blank
// cells are empty strings.
type Grid [][]string

// Page carries the tables detected on one document page, in top-to-bottom
// order.
type Page struct {
	Number int
	Tables []Grid
}

// Document is the geometric input to the extraction engine.
type Document struct {
	// Text is the full extracted text in reading order.
	Text string
	// Pages lists detected tables per page, in page order.
	Pages []Page
}

// Tables flattens all detected grids in page order.
func (d *Document) Tables() []Grid {
	var grids []Grid
	for _, p := range d.Pages {
		grids = append(grids, p.Tables...)
	}
	return grids
}

// Lines splits the document text into physical lines.
func (d *Document) Lines() []string {
	if d.Text == "" {
		return nil
	}
	lines := make([]string, 0, 64)
	start := 0
	for i := 0; i < len(d.Text); i++ {
		if d.Text[i] == '\n' {
			lines = append(lines, d.Text[start:i])
			start = i + 1
		}
	}
	return append(lines, d.Text[start:])
}

// Extractor acquires a Document from a source reference. Implementations
// wrap the external layout-extraction capability; failures here abort the
// whole extraction for that document.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Document, error)
}
