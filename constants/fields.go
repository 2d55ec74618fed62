package constants

// Column is the semantic name of a table column.
type Column string

// Stable values (profiles reference these exact strings).
const (
	ColumnSKU         Column = "sku"
	ColumnDescription Column = "description"
	ColumnQuantity    Column = "quantity"
	ColumnUnitPrice   Column = "unit_price"
	ColumnTotal       Column = "total"
	ColumnTaxRate     Column = "tax_rate"
	ColumnPosition    Column = "position"
)

// ValueType declares how a captured string is normalized before storage.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeDate   ValueType = "date"
	TypeNumber ValueType = "number"
)

// Strategy selects how the item table is located and decoded.
type Strategy string

const (
	// StrategyGrid consumes pre-detected table grids from the layout extractor.
	StrategyGrid Strategy = "structured-table"
	// StrategyLines matches one row pattern per text line between markers.
	StrategyLines Strategy = "line-regex"
	// StrategyBlock matches row patterns across the whole marked text block.
	StrategyBlock Strategy = "block-regex"
)

// Namespace is the destination bucket for an extracted header/footer field.
type Namespace string

const (
	NamespaceMetadata Namespace = "metadata"
	NamespaceCustomer Namespace = "customer"
	NamespaceVendor   Namespace = "vendor"
	NamespaceTotals   Namespace = "totals"
)
