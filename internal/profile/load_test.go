package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilyanormand/fwn-renta/constants"
)

const sampleProfileJSON = `{
  "vendor": {"name": "Acme Nutrition", "currency": "EUR", "language": "en"},
  "header": {"fields": [
    {"name": "invoice_number", "pattern": "Invoice\\s+No\\.?\\s*([A-Z0-9-]+)"},
    {"name": "invoice_date", "pattern": "Date[:\\s]+([\\d./-]+)", "type": "date"}
  ]},
  "table": {
    "strategy": "structured-table",
    "header_keywords": ["description", "qty", "price", "total"],
    "columns": [
      {"name": "description", "index": 0},
      {"name": "quantity", "index": 1, "type": "number"},
      {"name": "unit_price", "index": 2, "type": "number"},
      {"name": "total", "index": 3, "type": "number"}
    ]
  },
  "footer": {"fields": [
    {"name": "subtotal", "pattern": "Subtotal[:\\s]+([\\d.,]+)"}
  ]}
}`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sampleProfileJSON))
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if p.Vendor.Name != "Acme Nutrition" {
		t.Errorf("vendor name = %q", p.Vendor.Name)
	}
	if p.Table.Strategy != constants.StrategyGrid {
		t.Errorf("strategy = %q", p.Table.Strategy)
	}
	if got := len(p.Table.Columns); got != 4 {
		t.Errorf("columns = %d, want 4", got)
	}
	if p.Footer.Fields[0].Type != constants.TypeNumber {
		t.Errorf("footer field type = %q, want number", p.Footer.Fields[0].Type)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	raw := []byte(`{"vendor": {"name": "X"}, "table": {"strategy": "structured-table"}, "surprise": true}`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse() accepted a profile with unknown top-level keys")
	}
}

func TestParseRejectsBadStrategy(t *testing.T) {
	raw := []byte(`{"vendor": {"name": "X"}, "table": {"strategy": "csv"}}`)
	if _, err := Parse(raw); err == nil {
		t.Fatal("Parse() accepted an unknown strategy")
	}
}

func TestStoreLoadAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "acme.json"), []byte(sampleProfileJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dir, nil)
	if err := store.LoadAll(); err != nil {
		t.Fatalf("LoadAll() = %v", err)
	}
	if _, err := store.Get("acme"); err != nil {
		t.Errorf("Get(acme) = %v", err)
	}
	if _, err := store.Get("missing"); err == nil {
		t.Error("Get(missing) = nil error")
	}
	if ids := store.IDs(); len(ids) != 1 {
		t.Errorf("IDs() = %v, want one entry", ids)
	}
}
