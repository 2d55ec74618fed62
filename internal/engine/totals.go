package engine

import (
	"log/slog"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// Reconcile fills missing totals from the line items and applies the
// header-level discount ratio. It must run exactly once per document:
// discount application rewrites unit_price/total in place, so a second
// invocation with the same gross/discount amounts would compound the ratio.
// The shipping fee stays a separate totals entry and is never folded into
// the subtotal here.
func Reconcile(res *Result, caps profile.Capabilities, logger *slog.Logger) {
	if caps.MergeNegativeRows {
		res.OrderItems = foldNegativeRows(res.OrderItems)
	}

	if res.Totals[constants.TotalSubtotal] == "" && len(res.OrderItems) > 0 {
		sum := 0.0
		for _, item := range res.OrderItems {
			if item.Total != "" {
				sum += normalize.ParseNumber(item.Total)
				continue
			}
			sum += normalize.ParseNumber(item.Quantity) * normalize.ParseNumber(item.UnitPrice)
		}
		res.Totals[constants.TotalSubtotal] = normalize.FormatMoney(sum)
	}

	gross := normalize.ParseNumber(res.Totals[constants.TotalGrossAmount])
	discount := normalize.ParseNumber(res.Totals[constants.TotalDiscountAmount])
	if gross > 0 && discount > 0 {
		ratio := discount / gross
		logger.Debug("applying header discount", "ratio", ratio)
		for i := range res.OrderItems {
			item := &res.OrderItems[i]
			// Absent prices stay absent; scaling an empty field would
			// invent a "0.00" value.
			if item.UnitPrice != "" {
				item.UnitPrice = normalize.FormatMoney(normalize.ParseNumber(item.UnitPrice) * (1 - ratio))
			}
			if item.Total != "" {
				item.Total = normalize.FormatMoney(normalize.ParseNumber(item.Total) * (1 - ratio))
			}
		}
	}
}

// foldNegativeRows merges each negative adjustment row into the item above
// it, recomputing the unit price at the original quantity. A leading
// negative row has no predecessor and is kept as-is.
func foldNegativeRows(items []LineItem) []LineItem {
	var out []LineItem
	for _, item := range items {
		total := normalize.ParseNumber(item.Total)
		if total >= 0 || len(out) == 0 {
			out = append(out, item)
			continue
		}
		prev := &out[len(out)-1]
		prevTotal := normalize.ParseNumber(prev.Total) + total
		prev.Total = normalize.FormatMoney(prevTotal)
		if quantity := normalize.ParseNumber(prev.Quantity); quantity > 0 {
			prev.UnitPrice = normalize.FormatMoney(prevTotal / quantity)
		}
	}
	return out
}
