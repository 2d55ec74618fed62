package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/engine"
)

// Service flattens extraction results into XLSX bytes, one row per line item.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = "Extractions"
	}
	return &Service{sheet: sheet, logger: logger}
}

var headers = []string{
	"Vendor",
	"Invoice Number",
	"Invoice Date",
	"SKU",
	"Description",
	"Quantity",
	"Unit Price",
	"Total",
	"Currency",
	"Subtotal",
	"Shipping Fee",
}

// ResultsXLSX returns an XLSX workbook for a batch of extraction results.
// Document-level values repeat on each of the document's item rows.
func (s *Service) ResultsXLSX(results []*engine.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(s.sheet); index == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(s.sheet, cell, h)
	}

	row := 2
	items := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(s.sheet, cell, v)
		}
		for _, item := range res.OrderItems {
			write(1, res.Vendor["name"])
			write(2, res.Metadata[constants.MetaInvoiceNumber])
			write(3, res.Metadata[constants.MetaInvoiceDate])
			write(4, item.SKU)
			write(5, item.Description)
			write(6, item.Quantity)
			write(7, item.UnitPrice)
			write(8, item.Total)
			write(9, res.Vendor["currency"])
			write(10, res.Totals[constants.TotalSubtotal])
			write(11, res.Totals[constants.TotalShippingFee])
			row++
			items++
		}
	}

	_ = f.SetColWidth(s.sheet, "A", "A", 22) // vendor
	_ = f.SetColWidth(s.sheet, "B", "C", 16) // invoice number/date
	_ = f.SetColWidth(s.sheet, "D", "D", 14) // sku
	_ = f.SetColWidth(s.sheet, "E", "E", 48) // description
	_ = f.SetColWidth(s.sheet, "F", "H", 12) // amounts
	_ = f.SetColWidth(s.sheet, "I", "K", 12) // currency and totals

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"documents", len(results),
		"rows", items,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
