package layout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/model"
)

// TabulaExtractor reads PDFs with tsawler/tabula: reading-order text plus
// geometric table detection.
type TabulaExtractor struct {
	logger *slog.Logger
}

func NewTabulaExtractor(logger *slog.Logger) *TabulaExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TabulaExtractor{logger: logger}
}

// Extract implements Extractor.
func (e *TabulaExtractor) Extract(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, warnings, err := tabula.Open(path).Text()
	if err != nil {
		return nil, fmt.Errorf("extract text from %s: %w", path, err)
	}
	if len(warnings) > 0 {
		e.logger.Warn("layout text warnings", "path", path, "count", len(warnings))
	}

	doc, warnings, err := tabula.Open(path).Document()
	if err != nil {
		return nil, fmt.Errorf("extract layout from %s: %w", path, err)
	}
	if len(warnings) > 0 {
		e.logger.Warn("layout structure warnings", "path", path, "count", len(warnings))
	}

	out := &Document{Text: text}
	for _, page := range doc.Pages {
		p := Page{Number: page.Number}
		for _, elem := range page.Elements {
			table, ok := elem.(*model.Table)
			if !ok {
				continue
			}
			grid := make(Grid, 0, table.RowCount())
			for _, row := range table.Rows {
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = cell.Text
				}
				grid = append(grid, cells)
			}
			if len(grid) > 0 {
				p.Tables = append(p.Tables, grid)
			}
		}
		out.Pages = append(out.Pages, p)
	}

	e.logger.Debug("layout extracted",
		"path", path, "pages", len(out.Pages), "tables", len(out.Tables()), "text_bytes", len(text))
	return out, nil
}
