package profile

import (
	"errors"
	"testing"

	"github.com/ilyanormand/fwn-renta/constants"
	"github.com/ilyanormand/fwn-renta/internal/common"
)

func intPtr(i int) *int { return &i }

func validGridProfile() *Profile {
	return &Profile{
		Vendor: Vendor{Name: "Acme Nutrition", Currency: "EUR", Language: "en"},
		Table: Table{
			Strategy: constants.StrategyGrid,
			Columns: []Column{
				{Name: constants.ColumnDescription, Index: intPtr(0)},
				{Name: constants.ColumnTotal, Index: intPtr(3), Type: constants.TypeNumber},
			},
			HeaderKeywords: []string{"description", "total"},
		},
	}
}

func TestCompileBindingValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"valid grid", func(p *Profile) {}, false},
		{
			"group with grid strategy",
			func(p *Profile) {
				p.Table.Columns = append(p.Table.Columns, Column{Name: constants.ColumnSKU, Group: intPtr(1)})
			},
			true,
		},
		{
			"index with regex strategy",
			func(p *Profile) {
				p.Table.Strategy = constants.StrategyLines
				p.Table.RowPattern = `(\d+)`
				p.Table.Columns = []Column{{Name: constants.ColumnTotal, Index: intPtr(2)}}
			},
			true,
		},
		{
			"regex strategy without row pattern",
			func(p *Profile) {
				p.Table.Strategy = constants.StrategyBlock
				p.Table.Columns = nil
			},
			true,
		},
		{
			"unknown strategy",
			func(p *Profile) { p.Table.Strategy = "csv" },
			true,
		},
		{
			"missing vendor name",
			func(p *Profile) { p.Vendor.Name = "" },
			true,
		},
		{
			"invalid field pattern",
			func(p *Profile) {
				p.Header.Fields = []FieldRule{{Name: "invoice_number", Pattern: `([`}}
			},
			true,
		},
		{
			"unknown target namespace",
			func(p *Profile) {
				p.Header.Fields = []FieldRule{{Name: "x", Pattern: `x`, Target: "somewhere"}}
			},
			true,
		},
		{
			"unknown preprocess flag",
			func(p *Profile) { p.Preprocess = "rotate" },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validGridProfile()
			tt.mutate(p)
			err := p.Compile()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Compile() = nil, want error")
				}
				if !errors.Is(err, common.ErrConfig) {
					t.Errorf("Compile() error = %v, want ErrConfig", err)
				}
			} else if err != nil {
				t.Fatalf("Compile() = %v, want nil", err)
			}
		})
	}
}

func TestCompileDefaults(t *testing.T) {
	p := validGridProfile()
	p.Header.Fields = []FieldRule{{Name: "invoice_number", Pattern: `Invoice\s+(\S+)`}}
	p.Footer.Fields = []FieldRule{{Name: "subtotal", Pattern: `Subtotal\s+([\d.,]+)`}}
	if err := p.Compile(); err != nil {
		t.Fatalf("Compile() = %v", err)
	}

	h := p.Header.Fields[0]
	if h.Group != 1 || h.Type != constants.TypeString || h.Target != constants.NamespaceMetadata {
		t.Errorf("header defaults = {group:%d type:%s target:%s}", h.Group, h.Type, h.Target)
	}
	f := p.Footer.Fields[0]
	if f.Type != constants.TypeNumber || f.Target != constants.NamespaceTotals {
		t.Errorf("footer defaults = {type:%s target:%s}", f.Type, f.Target)
	}
	if h.Regexp() == nil || f.Regexp() == nil {
		t.Error("field patterns not compiled")
	}
}
