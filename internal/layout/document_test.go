package layout

import (
	"reflect"
	"testing"
)

func TestDocumentLines(t *testing.T) {
	doc := &Document{Text: "first\nsecond\n\nfourth"}
	want := []string{"first", "second", "", "fourth"}
	if got := doc.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}

	empty := &Document{}
	if got := empty.Lines(); got != nil {
		t.Errorf("Lines() on empty document = %v, want nil", got)
	}
}

func TestDocumentTables(t *testing.T) {
	doc := &Document{
		Pages: []Page{
			{Number: 1, Tables: []Grid{{{"a"}}, {{"b"}}}},
			{Number: 2, Tables: []Grid{{{"c"}}}},
		},
	}
	grids := doc.Tables()
	if len(grids) != 3 {
		t.Fatalf("Tables() = %d grids, want 3", len(grids))
	}
	if grids[2][0][0] != "c" {
		t.Errorf("page order lost: last grid = %v", grids[2])
	}
}
