package orderform

import (
	"strings"
	"testing"
)

func TestCreateRowAt_ReplacesEveryPlaceholder(t *testing.T) {
	tmpl := &RowTemplate{
		Markup: `<input name="p-__prefix__-cantidad" id="id_p-__prefix__-cantidad">` +
			`<input name="p-__prefix__-precio_unitario">`,
		SupplyOptions: []Option{{Value: "7", Label: "Tinta"}},
	}

	row, markup := tmpl.CreateRowAt(12)

	if strings.Contains(markup, Placeholder) {
		t.Errorf("markup still contains placeholder: %s", markup)
	}
	if strings.Count(markup, "p-12-") != 3 {
		t.Errorf("markup = %s, want three substituted names", markup)
	}
	if row.Index != 12 {
		t.Errorf("Index = %d, want 12", row.Index)
	}
	if !row.WellFormed() {
		t.Error("template row not well formed")
	}
	if !row.Supply.Has("7") {
		t.Error("template supply options not copied to row")
	}
}

func TestCreateRowAt_RowsDoNotShareOptions(t *testing.T) {
	tmpl := &RowTemplate{SupplyOptions: []Option{{Value: "7", Label: "Tinta"}}}
	a, _ := tmpl.CreateRowAt(0)
	b, _ := tmpl.CreateRowAt(1)

	a.Supply.Append(Option{Value: "9", Label: "Nuevo"}, true)

	if b.Supply.Has("9") {
		t.Error("option added to one row leaked into another")
	}
	if len(tmpl.SupplyOptions) != 1 {
		t.Errorf("template options = %v, want unchanged", tmpl.SupplyOptions)
	}
}

func TestAddSupplyOption_NoDuplicates(t *testing.T) {
	tmpl := &RowTemplate{}
	tmpl.AddSupplyOption(Option{Value: "1", Label: "A"})
	tmpl.AddSupplyOption(Option{Value: "1", Label: "A"})
	if len(tmpl.SupplyOptions) != 1 {
		t.Errorf("len = %d, want 1", len(tmpl.SupplyOptions))
	}
}
