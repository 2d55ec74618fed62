package engine

import (
	"log/slog"
	"regexp"
	"sort"

	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// blockStrategy slices the text between the start and end markers and runs
// the row patterns over the whole block, so one logical row may span several
// physical lines. A primary and an alternate pattern may both be configured
// for documents that intermix two row layouts; matches from both are merged
// back into text order.
type blockStrategy struct {
	table  *profile.Table
	logger *slog.Logger
}

type blockMatch struct {
	offset  int
	columns []profile.Column
	groups  []string
}

func (s *blockStrategy) Extract(doc *layout.Document) []RawRow {
	block := doc.Text
	if re := s.table.StartRegexp(); re != nil {
		if loc := re.FindStringIndex(block); loc != nil {
			block = block[loc[1]:]
		}
	}
	if re := s.table.EndRegexp(); re != nil {
		if loc := re.FindStringIndex(block); loc != nil {
			block = block[:loc[0]]
		}
	}

	matches := collectMatches(block, s.table.RowRegexp(), s.table.Columns)
	if alt := s.table.RowAltRegexp(); alt != nil {
		cols := s.table.ColumnsAlt
		if len(cols) == 0 {
			cols = s.table.Columns
		}
		matches = append(matches, collectMatches(block, alt, cols)...)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].offset < matches[j].offset })

	var rows []RawRow
	for _, m := range matches {
		if row := decodeGroups(m.groups, m.columns); len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func collectMatches(block string, re *regexp.Regexp, columns []profile.Column) []blockMatch {
	var out []blockMatch
	for _, idx := range re.FindAllStringSubmatchIndex(block, -1) {
		groups := make([]string, len(idx)/2)
		for g := 0; g < len(idx)/2; g++ {
			if idx[2*g] >= 0 {
				groups[g] = block[idx[2*g]:idx[2*g+1]]
			}
		}
		out = append(out, blockMatch{offset: idx[0], columns: columns, groups: groups})
	}
	return out
}
