package constants

// Well-known keys in the totals namespace. Footer rules may emit any key,
// but these are the ones the reconciler and validator understand.
const (
	TotalSubtotal       = "subtotal"
	TotalTotal          = "total"
	TotalShippingFee    = "shipping_fee"
	TotalGrossAmount    = "gross_amount"
	TotalDiscountAmount = "discount_amount"
)

// Well-known keys in the metadata namespace.
const (
	MetaInvoiceNumber = "invoice_number"
	MetaInvoiceDate   = "invoice_date"
)
