package engine

import (
	"log/slog"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/layout"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// TableStrategy converts document layout into an ordered sequence of raw
// rows. Exactly one strategy runs per extraction, selected by the profile.
type TableStrategy interface {
	Extract(doc *layout.Document) []RawRow
}

// newStrategy builds the strategy the profile asks for. The profile is
// already compiled, so the strategy value is invalid only on programmer
// error.
func newStrategy(p *profile.Profile, logger *slog.Logger) TableStrategy {
	switch p.Table.Strategy {
	case constants.StrategyLines:
		return &lineStrategy{table: &p.Table, logger: logger}
	case constants.StrategyBlock:
		return &blockStrategy{table: &p.Table, logger: logger}
	default:
		return &gridStrategy{
			table:       &p.Table,
			logger:      logger,
			deduplicate: p.Preprocess == profile.PreprocessDeduplicate,
		}
	}
}

// moneyColumn reports whether a semantic column carries a monetary value
// and must keep minor-currency precision when re-rendered.
func moneyColumn(name constants.Column) bool {
	return name == constants.ColumnUnitPrice || name == constants.ColumnTotal
}

// decodeValue normalizes one captured cell according to the column's type.
func decodeValue(col profile.Column, raw string) string {
	if col.Type == constants.TypeNumber {
		v := normalize.ParseNumber(raw)
		if moneyColumn(col.Name) {
			return normalize.FormatMoney(v)
		}
		return normalize.FormatAmount(v)
	}
	return normalize.CleanText(raw)
}

// decodeGroups maps regex capture groups onto semantic columns. Columns
// whose group is missing or empty in this match are simply omitted.
func decodeGroups(match []string, columns []profile.Column) RawRow {
	row := make(RawRow, len(columns))
	for _, col := range columns {
		if col.Group == nil || *col.Group >= len(match) {
			continue
		}
		raw := match[*col.Group]
		if raw == "" {
			continue
		}
		row[col.Name] = decodeValue(col, raw)
	}
	return row
}
