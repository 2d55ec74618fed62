package engine

import (
	"log/slog"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// lineStrategy scans the document text line by line. A cursor toggles on at
// the start marker and off at the end marker without stopping the scan, so
// tables that restart on later pages are still captured; a profile with no
// start marker scans every line. Lines inside the
// table are matched against the row pattern; an optional alternate pattern
// recognizes an external id printed on the line below a priced row and
// patches it onto the row just emitted.
type lineStrategy struct {
	table  *profile.Table
	logger *slog.Logger
}

// altColumns is the binding used for the external-id side channel when the
// profile does not configure one: capture group 1 is the sku.
var altColumns = func() []profile.Column {
	g := 1
	return []profile.Column{{Name: constants.ColumnSKU, Group: &g, Type: constants.TypeString}}
}()

func (s *lineStrategy) Extract(doc *layout.Document) []RawRow {
	var rows []RawRow
	// Without a start marker every line is in scope from the first one.
	scanAll := s.table.StartRegexp() == nil
	inTable := scanAll
	var lastRow RawRow

	for _, line := range doc.Lines() {
		if !inTable {
			if re := s.table.StartRegexp(); re != nil && re.MatchString(line) {
				inTable = true
			}
			continue
		}
		if re := s.table.EndRegexp(); re != nil && re.MatchString(line) {
			inTable = scanAll
			lastRow = nil
			continue
		}

		if match := s.table.RowRegexp().FindStringSubmatch(line); match != nil {
			row := decodeGroups(match, s.table.Columns)
			if len(row) > 0 {
				rows = append(rows, row)
				lastRow = row
			}
			continue
		}

		if alt := s.table.RowAltRegexp(); alt != nil && lastRow != nil {
			if match := alt.FindStringSubmatch(line); match != nil {
				cols := s.table.ColumnsAlt
				if len(cols) == 0 {
					cols = altColumns
				}
				for name, value := range decodeGroups(match, cols) {
					lastRow[name] = value
				}
				lastRow = nil
				continue
			}
		}
		lastRow = nil
	}
	return rows
}
