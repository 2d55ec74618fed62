// Package engine implements the configuration-driven extraction pipeline:
// header fields, the item table, row post-processing, totals reconciliation,
// and validation, orchestrated in a fixed order per document.
package engine

import (
	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

// LineItem is a pipeline-finalized order line. Identity fields are final
// once emitted; later stages may adjust numeric fields only (discount
// application, adjustment-row merges).
type LineItem struct {
	Position    string `json:"position,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
	TaxRate     string `json:"tax_rate,omitempty"`
}

// RawRow is a strategy-produced record keyed by semantic column name, with
// no business validation applied yet.
type RawRow map[constants.Column]string

// hasIdentity reports whether the row carries product identity data.
func (r RawRow) hasIdentity() bool {
	return r[constants.ColumnSKU] != "" || r[constants.ColumnDescription] != ""
}

// hasPrice reports whether the row carries priced data.
func (r RawRow) hasPrice() bool {
	return r[constants.ColumnTotal] != "" || r[constants.ColumnUnitPrice] != "" || r[constants.ColumnQuantity] != ""
}

// Result is the structured output of one extraction run. Constructed empty,
// populated stage by stage, returned immutable to the caller.
type Result struct {
	Vendor           map[string]string `json:"vendor"`
	Customer         map[string]string `json:"customer"`
	OrderItems       []LineItem        `json:"order_items"`
	Totals           map[string]string `json:"totals"`
	Metadata         map[string]string `json:"metadata"`
	ValidationErrors []string          `json:"validation_errors,omitempty"`
}

// NewResult seeds a result with the profile's vendor identity.
func NewResult(v profile.Vendor) *Result {
	return &Result{
		Vendor: map[string]string{
			"name":     v.Name,
			"currency": v.Currency,
			"language": v.Language,
		},
		Customer:   make(map[string]string),
		OrderItems: []LineItem{},
		Totals:     make(map[string]string),
		Metadata:   make(map[string]string),
	}
}

// Namespace returns the destination map for an extracted field.
func (r *Result) Namespace(ns constants.Namespace) map[string]string {
	switch ns {
	case constants.NamespaceVendor:
		return r.Vendor
	case constants.NamespaceCustomer:
		return r.Customer
	case constants.NamespaceTotals:
		return r.Totals
	default:
		return r.Metadata
	}
}
