package engine

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/normalize"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// Built-in freight detection sets, extended per profile. Marker SKUs match
// exactly, strict keywords on word boundaries (short tokens like "ups" would
// otherwise fire inside product names), loose keywords as substrings.
var (
	defaultMarkerSKUs    = []string{"DELIVERY", "SHIPPING", "FREIGHT", "VERSAND"}
	defaultStrictFreight = []string{"ups", "zone"}
	defaultLooseFreight  = []string{"shipping", "freight", "fracht", "delivery", "versand", "szállítás"}
)

// Summary-strip keywords guarding against table detectors that swallow the
// totals block as a table row.
var summaryKeywords = []string{"gesamt", "total", "subtotal", "sum", "tva", "tax", "net", "brut"}

// Non-product annotation markers stripped from descriptions. Profiles may
// extend the list.
var defaultAnnotations = []string{
	"expiry date:",
	"black friday",
	"deal of the month",
	"mega deal",
	"sample points",
	"(expires:",
}

var reBracketSKU = regexp.MustCompile(`^\[(.+?)\]`)

// mergeMachine joins an identity-only row with the priced row that follows
// it. Two states: idle (pending == nil) and pending. The machine is owned by
// a single pipeline run, never shared across documents.
type mergeMachine struct {
	pending RawRow
}

// step feeds one row through the machine and reports whether a row comes out
// the other side.
func (m *mergeMachine) step(row RawRow) (RawRow, bool) {
	identity, priced := row.hasIdentity(), row.hasPrice()
	switch {
	case identity && !priced:
		m.pending = row
		return nil, false
	case priced && !identity:
		if m.pending == nil {
			// Orphan priced row, nothing to attach to.
			return nil, false
		}
		merged := make(RawRow, len(m.pending)+len(row))
		for k, v := range m.pending {
			merged[k] = v
		}
		for k, v := range row {
			if v != "" {
				merged[k] = v
			}
		}
		m.pending = nil
		return merged, true
	case identity && priced:
		m.pending = nil
		return row, true
	default:
		return nil, false
	}
}

// rowPipeline applies the fixed post-processing chain to each raw row,
// producing zero or one canonical line item per row. All state is local to
// one document run.
type rowPipeline struct {
	prof   *profile.Profile
	logger *slog.Logger

	merge       *mergeMachine
	markerSKUs  map[string]struct{}
	strictRes   []*regexp.Regexp
	loose       []string
	annotations []string

	shippingFee  float64
	shippingSeen bool
}

func newRowPipeline(p *profile.Profile, logger *slog.Logger) *rowPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	rp := &rowPipeline{
		prof:        p,
		logger:      logger,
		markerSKUs:  make(map[string]struct{}),
		annotations: append(append([]string{}, defaultAnnotations...), p.Annotations...),
	}
	if p.Capabilities.MergeMultilineRows {
		rp.merge = &mergeMachine{}
	}
	for _, sku := range append(append([]string{}, defaultMarkerSKUs...), p.Shipping.MarkerSKUs...) {
		rp.markerSKUs[strings.ToUpper(sku)] = struct{}{}
	}
	for _, kw := range append(append([]string{}, defaultStrictFreight...), p.Shipping.Strict...) {
		rp.strictRes = append(rp.strictRes, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	rp.loose = append(append([]string{}, defaultLooseFreight...), p.Shipping.Loose...)
	return rp
}

// Process runs one raw row through every stage. The second return is false
// when a stage vetoed the row.
func (rp *rowPipeline) Process(row RawRow) (LineItem, bool) {
	if rp.merge != nil {
		merged, ok := rp.merge.step(row)
		if !ok {
			return LineItem{}, false
		}
		row = merged
	}
	if !row.hasIdentity() || !row.hasPrice() {
		return LineItem{}, false
	}

	rp.backfillSKU(row)

	if rp.isShipping(row) {
		rp.shippingFee += normalize.ParseNumber(row[constants.ColumnTotal])
		rp.shippingSeen = true
		rp.logger.Debug("freight row folded into totals", "total", row[constants.ColumnTotal])
		return LineItem{}, false
	}
	if rp.isSummary(row) {
		return LineItem{}, false
	}
	if !rp.stripAnnotations(row) {
		return LineItem{}, false
	}
	rp.fillTotal(row)

	return LineItem{
		Position:    row[constants.ColumnPosition],
		SKU:         row[constants.ColumnSKU],
		Description: row[constants.ColumnDescription],
		Quantity:    row[constants.ColumnQuantity],
		UnitPrice:   row[constants.ColumnUnitPrice],
		Total:       row[constants.ColumnTotal],
		TaxRate:     row[constants.ColumnTaxRate],
	}, true
}

// ShippingFee reports the accumulated freight total, if any row carried one.
func (rp *rowPipeline) ShippingFee() (string, bool) {
	if !rp.shippingSeen {
		return "", false
	}
	return normalize.FormatMoney(rp.shippingFee), true
}

func (rp *rowPipeline) backfillSKU(row RawRow) {
	if row[constants.ColumnSKU] != "" {
		return
	}
	if m := reBracketSKU.FindStringSubmatch(row[constants.ColumnDescription]); m != nil {
		row[constants.ColumnSKU] = m[1]
	}
}

func (rp *rowPipeline) isShipping(row RawRow) bool {
	if sku := row[constants.ColumnSKU]; sku != "" {
		if _, ok := rp.markerSKUs[strings.ToUpper(sku)]; ok {
			return true
		}
	}
	haystack := row[constants.ColumnDescription] + " " + row[constants.ColumnPosition]
	for _, re := range rp.strictRes {
		if re.MatchString(haystack) {
			return true
		}
	}
	lower := strings.ToLower(haystack)
	for _, kw := range rp.loose {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func (rp *rowPipeline) isSummary(row RawRow) bool {
	position := strings.ToLower(row[constants.ColumnPosition])
	description := strings.ToLower(strings.TrimSpace(row[constants.ColumnDescription]))
	for _, kw := range summaryKeywords {
		if position != "" && strings.HasPrefix(position, kw) {
			return true
		}
		if description != "" && len(description) < 50 && strings.HasPrefix(description, kw) {
			return true
		}
	}
	return false
}

// stripAnnotations removes non-product annotation lines from the
// description. It reports false when nothing product-related remains.
func (rp *rowPipeline) stripAnnotations(row RawRow) bool {
	description := row[constants.ColumnDescription]
	if description == "" {
		return true
	}
	var kept []string
	for _, line := range strings.Split(description, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if rp.isAnnotation(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == 0 {
		// The whole description was annotation text; the row is not a
		// product line unless a sku identifies it.
		if row[constants.ColumnSKU] == "" {
			return false
		}
		row[constants.ColumnDescription] = ""
		return true
	}
	row[constants.ColumnDescription] = strings.Join(kept, " ")
	return true
}

func (rp *rowPipeline) isAnnotation(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range rp.annotations {
		if strings.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

func (rp *rowPipeline) fillTotal(row RawRow) {
	if row[constants.ColumnTotal] != "" {
		return
	}
	quantity, unitPrice := row[constants.ColumnQuantity], row[constants.ColumnUnitPrice]
	if quantity == "" || unitPrice == "" {
		return
	}
	if rp.prof.Capabilities.MissingTotalMeansFree {
		row[constants.ColumnTotal] = "0"
		return
	}
	row[constants.ColumnTotal] = normalize.FormatMoney(normalize.ParseNumber(quantity) * normalize.ParseNumber(unitPrice))
}
