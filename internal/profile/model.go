// Package profile holds the declarative description of a document source:
// header/footer field rules, the table strategy with its columns, and the
// vendor capability flags that select optional pipeline behavior.
package profile

import (
	"regexp"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/common"
)

// Vendor identifies the document source.
type Vendor struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Language string `json:"language"`
}

// FieldRule extracts one named header or footer value from the full text.
type FieldRule struct {
	Name    string              `json:"name"`
	Pattern string              `json:"pattern"`
	Group   int                 `json:"group"`
	Type    constants.ValueType `json:"type"`
	Target  constants.Namespace `json:"target"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern. Valid after Compile.
func (r *FieldRule) Regexp() *regexp.Regexp { return r.re }

// Column binds a semantic column to its source: a positional cell index for
// the structured-table strategy, or a capture group for the regex strategies.
type Column struct {
	Name  constants.Column    `json:"name"`
	Index *int                `json:"index,omitempty"`
	Group *int                `json:"group,omitempty"`
	Type  constants.ValueType `json:"type"`
}

// Table describes how the item table is located and decoded.
type Table struct {
	Strategy       constants.Strategy `json:"strategy"`
	StartMarker    string             `json:"start_marker,omitempty"`
	EndMarker      string             `json:"end_marker,omitempty"`
	RowPattern     string             `json:"row_pattern,omitempty"`
	RowPatternAlt  string             `json:"row_pattern_alt,omitempty"`
	Columns        []Column           `json:"columns"`
	ColumnsAlt     []Column           `json:"columns_alt,omitempty"`
	HeaderKeywords []string           `json:"header_keywords,omitempty"`
	MinColumns     int                `json:"min_columns,omitempty"`

	startRe  *regexp.Regexp
	endRe    *regexp.Regexp
	rowRe    *regexp.Regexp
	rowAltRe *regexp.Regexp
}

func (t *Table) StartRegexp() *regexp.Regexp  { return t.startRe }
func (t *Table) EndRegexp() *regexp.Regexp    { return t.endRe }
func (t *Table) RowRegexp() *regexp.Regexp    { return t.rowRe }
func (t *Table) RowAltRegexp() *regexp.Regexp { return t.rowAltRe }

// Section is an ordered list of field rules.
type Section struct {
	Fields []FieldRule `json:"fields"`
}

// ShippingKeywords configures freight-row detection per locale. Strict
// keywords match on word boundaries (short ambiguous tokens like "ups"),
// loose keywords match as substrings.
type ShippingKeywords struct {
	MarkerSKUs []string `json:"marker_skus,omitempty"`
	Strict     []string `json:"strict,omitempty"`
	Loose      []string `json:"loose,omitempty"`
}

// Capabilities are the named, per-vendor behaviors the row pipeline and the
// reconciler switch on. They replace inline vendor-name conditionals.
type Capabilities struct {
	// MergeMultilineRows enables the two-state machine joining an
	// identity-only row with the priced row that follows it.
	MergeMultilineRows bool `json:"merge_multiline_rows,omitempty"`
	// MissingTotalMeansFree treats an absent total as a 100%-discounted
	// credit line (total = 0) instead of computing quantity x unit price.
	MissingTotalMeansFree bool `json:"missing_total_means_free,omitempty"`
	// MergeNegativeRows folds a negative adjustment row into the item
	// above it, recomputing the unit price at the original quantity.
	MergeNegativeRows bool `json:"merge_negative_rows,omitempty"`
}

// PreprocessDeduplicate is the only recognized preprocess flag value.
const PreprocessDeduplicate = "deduplicate"

// Profile is the immutable configuration for one document source. Compile
// once, then share freely across concurrent extractions.
type Profile struct {
	Vendor       Vendor           `json:"vendor"`
	Header       Section          `json:"header"`
	Table        Table            `json:"table"`
	Footer       Section          `json:"footer"`
	Preprocess   string           `json:"preprocess,omitempty"`
	Capabilities Capabilities     `json:"capabilities,omitempty"`
	Shipping     ShippingKeywords `json:"shipping_keywords,omitempty"`

	// Annotations extends the default non-product annotation markers
	// stripped from descriptions.
	Annotations []string `json:"annotations,omitempty"`
}

// Compile validates strategy/column bindings and compiles every pattern.
// It must succeed before the profile is handed to the engine; any violation
// is a configuration error raised before a document is touched.
func (p *Profile) Compile() error {
	if p.Vendor.Name == "" {
		return common.ConfigErrorf("vendor name is required")
	}
	switch p.Table.Strategy {
	case constants.StrategyGrid, constants.StrategyLines, constants.StrategyBlock:
	default:
		return common.ConfigErrorf("unknown table strategy %q", p.Table.Strategy)
	}
	if p.Preprocess != "" && p.Preprocess != PreprocessDeduplicate {
		return common.ConfigErrorf("unknown preprocess flag %q", p.Preprocess)
	}

	regexBased := p.Table.Strategy != constants.StrategyGrid
	if regexBased && p.Table.RowPattern == "" {
		return common.ConfigErrorf("strategy %q requires a row pattern", p.Table.Strategy)
	}
	for _, cols := range [][]Column{p.Table.Columns, p.Table.ColumnsAlt} {
		for _, col := range cols {
			if col.Index != nil && regexBased {
				return common.ConfigErrorf("column %q: positional index requires the %s strategy", col.Name, constants.StrategyGrid)
			}
			if col.Group != nil && !regexBased {
				return common.ConfigErrorf("column %q: capture group requires a regex strategy", col.Name)
			}
		}
	}

	var err error
	compile := func(dst **regexp.Regexp, flags, pattern, what string) {
		if err != nil || pattern == "" {
			return
		}
		re, cErr := regexp.Compile(flags + pattern)
		if cErr != nil {
			err = common.ConfigError("invalid "+what+" pattern", cErr)
			return
		}
		*dst = re
	}
	rowFlags := ""
	if p.Table.Strategy == constants.StrategyBlock {
		// Block rows span physical lines, so '.' must cross newlines.
		rowFlags = "(?s)"
	}
	compile(&p.Table.startRe, "(?i)", p.Table.StartMarker, "start marker")
	compile(&p.Table.endRe, "(?i)", p.Table.EndMarker, "end marker")
	compile(&p.Table.rowRe, rowFlags, p.Table.RowPattern, "row")
	compile(&p.Table.rowAltRe, rowFlags, p.Table.RowPatternAlt, "alternate row")
	if err != nil {
		return err
	}

	sections := []struct {
		section     *Section
		defaultType constants.ValueType
		footer      bool
	}{
		{&p.Header, constants.TypeString, false},
		{&p.Footer, constants.TypeNumber, true},
	}
	for _, s := range sections {
		for i := range s.section.Fields {
			rule := &s.section.Fields[i]
			if rule.Group == 0 {
				rule.Group = 1
			}
			if rule.Type == "" {
				rule.Type = s.defaultType
			}
			re, cErr := regexp.Compile("(?im)" + rule.Pattern)
			if cErr != nil {
				return common.ConfigError("invalid pattern for field "+rule.Name, cErr)
			}
			rule.re = re
			if s.footer {
				// Footer values always land in totals.
				rule.Target = constants.NamespaceTotals
			} else if err := resolveTarget(rule, constants.NamespaceMetadata); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveTarget fixes the destination namespace once, at load time.
func resolveTarget(rule *FieldRule, fallback constants.Namespace) error {
	switch rule.Target {
	case constants.NamespaceMetadata, constants.NamespaceCustomer, constants.NamespaceVendor:
		return nil
	case "":
		rule.Target = fallback
		return nil
	default:
		return common.ConfigErrorf("field %q: unknown target namespace %q", rule.Name, rule.Target)
	}
}

// Column lookup helpers used by the strategies.

// ColumnByName returns the first column with the given semantic name.
func (t *Table) ColumnByName(name constants.Column) (Column, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}
