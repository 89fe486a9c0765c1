package orderform

import (
	"net/url"
	"testing"
)

func TestParseForm_ReadsHeaderAndRows(t *testing.T) {
	values := url.Values{}
	values.Set("proveedor", "p1")
	values.Set("forma_pago", "f1")
	values.Set("detallescompra_set-TOTAL_FORMS", "3")
	values.Set("detallescompra_set-INITIAL_FORMS", "1")
	values.Set("detallescompra_set-0-id", "d1")
	values.Set("detallescompra_set-0-insumo", "7")
	values.Set("detallescompra_set-0-cantidad", "2")
	values.Set("detallescompra_set-0-precio_unitario", "4.50")
	values.Set("detallescompra_set-0-subtotal", "9.00")
	values.Set("detallescompra_set-2-insumo", "8")
	values.Set("detallescompra_set-2-cantidad", "1")
	values.Set("detallescompra_set-2-precio_unitario", "")
	values.Set("detallescompra_set-2-subtotal", "")

	f := ParseForm(values, FormOptions{Rules: DefaultRules()})

	if f.Supplier.Value != "p1" || f.PaymentMethod.Value != "f1" {
		t.Errorf("header = %q/%q, want p1/f1", f.Supplier.Value, f.PaymentMethod.Value)
	}
	if f.TotalForms != 3 {
		t.Errorf("TotalForms = %d, want 3", f.TotalForms)
	}
	if f.InitialForms != 1 {
		t.Errorf("InitialForms = %d, want 1", f.InitialForms)
	}
	if len(f.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(f.Rows))
	}

	first, second := f.Rows[0], f.Rows[1]
	if first.Index != 0 || !first.Persisted || first.ID != "d1" {
		t.Errorf("first row = %+v, want persisted index 0 id d1", first)
	}
	if second.Index != 2 || second.Persisted {
		t.Errorf("second row = %+v, want client row index 2", second)
	}
	if !first.WellFormed() || !second.WellFormed() {
		t.Error("expected both rows well formed")
	}
}

func TestParseForm_TotalFormsCoversHighestIndex(t *testing.T) {
	values := url.Values{}
	values.Set("detallescompra_set-TOTAL_FORMS", "1")
	values.Set("detallescompra_set-5-insumo", "7")

	f := ParseForm(values, FormOptions{})

	if f.TotalForms != 6 {
		t.Errorf("TotalForms = %d, want 6", f.TotalForms)
	}
}

func TestParseForm_DeleteFlag(t *testing.T) {
	values := url.Values{}
	values.Set("detallescompra_set-0-id", "d1")
	values.Set("detallescompra_set-0-insumo", "7")
	values.Set("detallescompra_set-0-DELETE", "on")

	f := ParseForm(values, FormOptions{})

	r := f.Rows[0]
	if !r.Persisted || !r.Deleted || !r.Hidden {
		t.Errorf("row = %+v, want persisted, deleted and hidden", r)
	}
}

func TestParseForm_MissingSubFieldsIsMalformed(t *testing.T) {
	values := url.Values{}
	values.Set("detallescompra_set-0-insumo", "7")

	f := ParseForm(values, FormOptions{})
	f.Initialize()

	if f.Rows[0].WellFormed() {
		t.Error("row without quantity/price/subtotal reported well formed")
	}
	if f.Rows[0].Subtotal != "" {
		t.Errorf("Subtotal = %q, want untouched", f.Rows[0].Subtotal)
	}
}

func TestParseForm_IgnoresForeignKeys(t *testing.T) {
	values := url.Values{}
	values.Set("otro-0-insumo", "7")
	values.Set("detallescompra_set-x-insumo", "7")
	values.Set("detallescompra_set-TOTAL_FORMS", "0")

	f := ParseForm(values, FormOptions{})

	if len(f.Rows) != 0 {
		t.Errorf("len(Rows) = %d, want 0", len(f.Rows))
	}
}

func TestValuesRoundTrip(t *testing.T) {
	f := newTestForm(map[string]string{"7": "9.00"})
	f.Supplier.Value = "1"
	f.PaymentMethod.Value = "1"
	row := mustAddRow(t, f)
	row.Supply.Value = "7"
	f.RecomputeRow(row)

	back := ParseForm(f.Values(), FormOptions{Prices: f.Prices, Rules: f.Rules})
	back.Initialize()

	if back.TotalForms != f.TotalForms {
		t.Errorf("TotalForms = %d, want %d", back.TotalForms, f.TotalForms)
	}
	if len(back.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(back.Rows))
	}
	got := back.Rows[0]
	if got.Supply.Value != "7" || got.Quantity != "1" || got.Price != "9.00" || got.Subtotal != "9.00" {
		t.Errorf("row = %+v, want supply 7 qty 1 price 9.00 subtotal 9.00", got)
	}
	if !back.Total.Equal(f.Total) {
		t.Errorf("Total = %s, want %s", back.Total, f.Total)
	}
	if !back.SubmitEnabled {
		t.Errorf("SubmitEnabled = false, issues: %v", back.Issues())
	}
}

func TestFieldNames(t *testing.T) {
	f := New(nil, nil, DefaultRules())
	if got := f.FieldName(3, RowFieldQuantity); got != "detallescompra_set-3-cantidad" {
		t.Errorf("FieldName = %q", got)
	}
	if got := f.TemplateFieldName(RowFieldPrice); got != "detallescompra_set-__prefix__-precio_unitario" {
		t.Errorf("TemplateFieldName = %q", got)
	}
	if got := f.TotalFormsName(); got != "detallescompra_set-TOTAL_FORMS" {
		t.Errorf("TotalFormsName = %q", got)
	}
}
