package engine

import (
	"log/slog"
	"strings"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// gridStrategy decodes pre-detected table grids. It locates the item table
// by scoring header keywords, binds semantic columns to cell indices
// (explicit configuration wins over header auto-detection), follows
// continuation tables across pages, and splits cells with embedded line
// breaks into synthetic sub-rows.
type gridStrategy struct {
	table       *profile.Table
	logger      *slog.Logger
	deduplicate bool
}

// autoDetectKeywords drive column binding from header cell text when the
// profile gives no explicit index. First matching header cell wins per
// column.
var autoDetectKeywords = []struct {
	name     constants.Column
	keywords []string
}{
	{constants.ColumnSKU, []string{"reference", "referencia", "ref"}},
	{constants.ColumnDescription, []string{"description", "conceptos", "descripción"}},
	{constants.ColumnQuantity, []string{"quantity", "qty", "cantidad", "cant"}},
	{constants.ColumnUnitPrice, []string{"price", "precio"}},
	{constants.ColumnTotal, []string{"total", "importe"}},
}

func (s *gridStrategy) Extract(doc *layout.Document) []RawRow {
	var rows []RawRow
	seen := make(map[string]struct{})
	var bindings map[constants.Column]int

	for _, grid := range doc.Tables() {
		if len(grid) == 0 {
			continue
		}
		if s.table.MinColumns > 0 && len(grid[0]) < s.table.MinColumns {
			continue
		}

		start := 0
		switch {
		case len(s.table.HeaderKeywords) == 0:
			if bindings == nil {
				bindings = s.explicitBindings()
			}
		case s.headerScore(grid[0]) >= 2:
			start = 1
			bindings = s.bind(grid[0])
			s.logger.Debug("item table matched", "columns", len(bindings))
		case len(rows) > 0 && len(grid[0]) >= len(s.table.Columns)-2:
			// Continuation of the matched table on a following page:
			// reuse the last successful bindings.
		default:
			continue
		}
		if len(bindings) == 0 {
			continue
		}

		for _, cells := range grid[start:] {
			subs := s.splitRow(cells, bindings)
			// Splitting a multi-line cell can repeat the same sub-item;
			// duplicate suppression applies to synthetic rows only, two
			// identical physical rows are two real order lines.
			synthetic := len(subs) > 1
			for _, sub := range subs {
				if s.deduplicate {
					for i := range sub {
						sub[i] = normalize.Deduplicate(sub[i])
					}
				}
				if !s.totalPresent(sub, bindings) {
					continue
				}
				row := s.decodeCells(sub, bindings)
				if len(row) == 0 {
					continue
				}
				if synthetic {
					key := rowKey(row)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// headerScore counts configured keywords found among the first row's cells,
// case-insensitive substring.
func (s *gridStrategy) headerScore(header []string) int {
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = strings.ToLower(h)
	}
	score := 0
	for _, kw := range s.table.HeaderKeywords {
		kw = strings.ToLower(kw)
		for _, cell := range cells {
			if strings.Contains(cell, kw) {
				score++
				break
			}
		}
	}
	return score
}

// bind derives column->index bindings from a matched header row, explicit
// configuration taking precedence over keyword auto-detection.
func (s *gridStrategy) bind(header []string) map[constants.Column]int {
	bindings := make(map[constants.Column]int)
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = strings.ToLower(h)
	}
	for _, auto := range autoDetectKeywords {
	detect:
		for i, cell := range cells {
			for _, kw := range auto.keywords {
				if strings.Contains(cell, kw) {
					bindings[auto.name] = i
					break detect
				}
			}
		}
	}
	for name, idx := range s.explicitBindings() {
		bindings[name] = idx
	}
	return bindings
}

func (s *gridStrategy) explicitBindings() map[constants.Column]int {
	bindings := make(map[constants.Column]int)
	for _, col := range s.table.Columns {
		if col.Index != nil {
			bindings[col.Name] = *col.Index
		}
	}
	return bindings
}

// colSpec returns the configured column for a semantic name, or a synthetic
// one with the default type for auto-detected columns the profile does not
// enumerate.
func (s *gridStrategy) colSpec(name constants.Column) profile.Column {
	for _, col := range s.table.Columns {
		if col.Name == name {
			return col
		}
	}
	typ := constants.TypeString
	switch name {
	case constants.ColumnQuantity, constants.ColumnUnitPrice, constants.ColumnTotal, constants.ColumnTaxRate:
		typ = constants.TypeNumber
	}
	return profile.Column{Name: name, Type: typ}
}

// splitRow turns one physical row into N synthetic rows when a numeric
// column's cell contains embedded line breaks. Multi-line cells align
// positionally; single-line cells go to the first synthetic row only, to be
// merged downstream if needed.
func (s *gridStrategy) splitRow(cells []string, bindings map[constants.Column]int) [][]string {
	split := false
	for name, idx := range bindings {
		if idx >= len(cells) {
			continue
		}
		if s.colSpec(name).Type == constants.TypeNumber && strings.Contains(cells[idx], "\n") {
			split = true
			break
		}
	}
	if !split {
		return [][]string{cells}
	}

	lines := make([][]string, len(cells))
	maxLines := 0
	for i, cell := range cells {
		if strings.Contains(cell, "\n") {
			lines[i] = strings.Split(cell, "\n")
		} else {
			lines[i] = []string{cell}
		}
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}

	out := make([][]string, 0, maxLines)
	for n := 0; n < maxLines; n++ {
		sub := make([]string, len(cells))
		for i := range cells {
			if n < len(lines[i]) {
				sub[i] = lines[i][n]
			}
		}
		out = append(out, sub)
	}
	return out
}

// totalPresent rejects rows whose bound total cell is empty or whitespace.
func (s *gridStrategy) totalPresent(cells []string, bindings map[constants.Column]int) bool {
	idx, ok := bindings[constants.ColumnTotal]
	if !ok || idx >= len(cells) {
		return true
	}
	return strings.TrimSpace(cells[idx]) != ""
}

func (s *gridStrategy) decodeCells(cells []string, bindings map[constants.Column]int) RawRow {
	row := make(RawRow, len(bindings))
	empty := true
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			empty = false
			break
		}
	}
	if empty {
		return nil
	}
	for name, idx := range bindings {
		if idx >= len(cells) {
			continue
		}
		raw := cells[idx]
		if strings.TrimSpace(raw) == "" {
			continue
		}
		row[name] = decodeValue(s.colSpec(name), raw)
	}
	return row
}

func rowKey(row RawRow) string {
	return strings.Join([]string{
		row[constants.ColumnSKU],
		row[constants.ColumnQuantity],
		row[constants.ColumnTotal],
		row[constants.ColumnUnitPrice],
		row[constants.ColumnDescription],
	}, "\x1f")
}
