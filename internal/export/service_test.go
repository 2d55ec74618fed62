package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

func TestResultsXLSX(t *testing.T) {
	res := engine.NewResult(profile.Vendor{Name: "Acme Nutrition", Currency: "EUR", Language: "en"})
	res.Metadata[constants.MetaInvoiceNumber] = "INV-42"
	res.Metadata[constants.MetaInvoiceDate] = "2024-10-30"
	res.Totals[constants.TotalSubtotal] = "30.00"
	res.OrderItems = []engine.LineItem{
		{SKU: "W-1", Description: "Widget", Quantity: "3", UnitPrice: "10.00", Total: "30.00"},
	}

	data, err := NewService("", nil).ResultsXLSX([]*engine.Result{res})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	tests := []struct{ cell, want string }{
		{"A1", "Vendor"},
		{"A2", "Acme Nutrition"},
		{"B2", "INV-42"},
		{"E2", "Widget"},
		{"H2", "30.00"},
		{"J2", "30.00"},
	}
	for _, tc := range tests {
		got, err := f.GetCellValue("Extractions", tc.cell)
		if err != nil {
			t.Fatalf("read %s: %v", tc.cell, err)
		}
		if got != tc.want {
			t.Errorf("%s = %q, want %q", tc.cell, got, tc.want)
		}
	}
}
