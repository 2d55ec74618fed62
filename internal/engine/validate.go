package engine

import (
	"fmt"
	"math"
	"regexp"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
)

// Tolerances for the soft mathematical checks. Per-item arithmetic is held
// to minor-currency precision; the document-level sum allows for rounding
// drift across many items.
const (
	itemTolerance     = 0.05
	documentTolerance = 0.5
)

var reDigit = regexp.MustCompile(`[0-9]`)

// Validate appends completeness, type, and arithmetic findings to the
// result. Errors and warnings share one ordered list, tagged by prefix;
// neither aborts the extraction.
func Validate(res *Result) {
	report := func(level, format string, args ...any) {
		res.ValidationErrors = append(res.ValidationErrors, level+": "+fmt.Sprintf(format, args...))
	}

	if res.Vendor["name"] == "" {
		report("ERROR", "vendor name is missing")
	}
	if res.Metadata[constants.MetaInvoiceNumber] == "" {
		report("ERROR", "invoice number is missing")
	}
	if res.Metadata[constants.MetaInvoiceDate] == "" {
		report("ERROR", "invoice date is missing")
	}
	if len(res.OrderItems) == 0 {
		report("WARNING", "no line items extracted")
		return
	}

	sum := 0.0
	for i, item := range res.OrderItems {
		for _, f := range []struct{ name, value string }{
			{"quantity", item.Quantity},
			{"unit_price", item.UnitPrice},
			{"total", item.Total},
		} {
			if !reDigit.MatchString(f.value) {
				report("ERROR", "item %d: %s %q is not numeric", i+1, f.name, f.value)
			}
		}
		quantity := normalize.ParseNumber(item.Quantity)
		unitPrice := normalize.ParseNumber(item.UnitPrice)
		total := normalize.ParseNumber(item.Total)
		if math.Abs(quantity*unitPrice-total) > itemTolerance {
			report("WARNING", "item %d: quantity x unit price (%.2f) differs from total (%.2f)",
				i+1, quantity*unitPrice, total)
		}
		sum += total
	}

	subtotalRaw := res.Totals[constants.TotalSubtotal]
	if subtotalRaw == "" {
		// Some vendors only print a grand total; check against that
		// rather than skipping the reconciliation outright.
		subtotalRaw = res.Totals[constants.TotalTotal]
	}
	if subtotalRaw == "" {
		return
	}
	subtotal := normalize.ParseNumber(subtotalRaw)
	shipping := normalize.ParseNumber(res.Totals[constants.TotalShippingFee])
	direct := math.Abs(sum-subtotal) <= documentTolerance
	withShipping := math.Abs(sum+shipping-subtotal) <= documentTolerance
	switch {
	case direct || (shipping == 0 && withShipping):
	case withShipping:
		report("WARNING", "item totals (%.2f) match subtotal (%.2f) only with shipping fee (%.2f)",
			sum, subtotal, shipping)
	default:
		report("ERROR", "item totals (%.2f) do not reconcile with subtotal (%.2f)", sum, subtotal)
	}
}
