package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestModel_CatalogLoadedStartsOneRow(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))

	if m.loading {
		t.Error("model should not be loading after the catalog arrives")
	}
	if len(m.form.Rows) != 1 || m.form.TotalForms != 1 {
		t.Fatalf("rows = %d, TotalForms = %d, want 1/1", len(m.form.Rows), m.form.TotalForms)
	}
	if m.form.SubmitEnabled {
		t.Error("submit must start disabled")
	}
	if m.form.Prices.Len() != 2 {
		t.Errorf("price table has %d entries, want 2", m.form.Prices.Len())
	}
	if !strings.Contains(m.View(), "Registrar compra") {
		t.Error("view should render the form")
	}
}

func TestModel_FillOrderEnablesSubmit(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))

	m = update(t, m,
		key(tea.KeyRight), // proveedor
		key(tea.KeyTab),
		key(tea.KeyRight), // forma de pago
		key(tea.KeyTab),
		key(tea.KeyTab),
		key(tea.KeyRight), // insumo: Resma A4
	)

	row := m.form.Rows[0]
	if row.Supply.Value != "i1" {
		t.Fatalf("supply = %q, want i1", row.Supply.Value)
	}
	if row.Price != "4500.00" || row.Subtotal != "4500.00" {
		t.Errorf("price/subtotal = %q/%q, want 4500.00/4500.00", row.Price, row.Subtotal)
	}

	m = update(t, m, key(tea.KeyTab), key(tea.KeyBackspace), typed("3"))
	if !m.editing {
		t.Fatal("quantity cell should be in edit mode")
	}
	if row.Quantity != "3" || row.Subtotal != "13500.00" {
		t.Errorf("quantity/subtotal = %q/%q, want 3/13500.00", row.Quantity, row.Subtotal)
	}
	if got := m.form.Total.StringFixed(2); got != "13500.00" {
		t.Errorf("total = %s, want 13500.00", got)
	}
	if !m.form.SubmitEnabled {
		t.Errorf("submit should be enabled, issues: %v", m.form.Issues())
	}
}

func TestModel_ClearedQuantityFallsBackToOne(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))
	// Focus the first row's quantity: three header selects, then supply.
	m = update(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyRight), key(tea.KeyTab))
	m = update(t, m, key(tea.KeyBackspace))

	row := m.form.Rows[0]
	if row.Quantity != "1" {
		t.Errorf("quantity = %q, want 1", row.Quantity)
	}
	if m.cell.Value() != "" {
		t.Errorf("editor should keep what was typed, got %q", m.cell.Value())
	}
}

func TestModel_TypedPriceWins(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))
	m = update(t, m, key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyRight))
	// price cell
	m = update(t, m, key(tea.KeyTab), key(tea.KeyTab))
	for range "4500.00" {
		m = update(t, m, key(tea.KeyBackspace))
	}
	m = update(t, m, typed("99.5"))

	row := m.form.Rows[0]
	if row.Price != "99.5" || row.Subtotal != "99.50" {
		t.Errorf("price/subtotal = %q/%q, want 99.5/99.50", row.Price, row.Subtotal)
	}
}

func TestModel_AddAndDeleteRows(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))

	m = update(t, m, key(tea.KeyCtrlN), key(tea.KeyCtrlN))
	if len(m.form.Rows) != 3 || m.form.TotalForms != 3 {
		t.Fatalf("rows = %d, TotalForms = %d, want 3/3", len(m.form.Rows), m.form.TotalForms)
	}
	cur, _ := m.focused()
	if cur.kind != fieldSupply || cur.row != 2 {
		t.Errorf("focus = %+v, want supply of row 2", cur)
	}

	m = update(t, m, key(tea.KeyCtrlD))
	if len(m.form.Rows) != 2 {
		t.Fatalf("rows = %d after delete, want 2", len(m.form.Rows))
	}
	if m.form.TotalForms != 3 {
		t.Errorf("TotalForms = %d, must not shrink", m.form.TotalForms)
	}

	// The next row takes the next unused index.
	m = update(t, m, key(tea.KeyCtrlN))
	if last := m.form.Rows[len(m.form.Rows)-1]; last.Index != 3 {
		t.Errorf("new row index = %d, want 3", last.Index)
	}
}

func TestModel_DeleteNeedsARow(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))
	m = update(t, m, key(tea.KeyCtrlD))

	if len(m.form.Rows) != 1 {
		t.Error("deleting with a header field focused must not remove rows")
	}
	if !m.status.isError {
		t.Error("expected an error status")
	}
}

func TestModel_SubmitDisabledExplains(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))

	m, cmd := updateCmd(t, m, key(tea.KeyCtrlS))
	if cmd != nil {
		t.Error("a disabled submit must not send anything")
	}
	if !strings.Contains(m.status.text, "Seleccione un proveedor") {
		t.Errorf("status = %q, want first issue", m.status.text)
	}
	if !strings.Contains(m.View(), "deshabilitado: Seleccione un proveedor") {
		t.Error("submit line should show the first issue")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, testConfig("http://example.invalid"))
	_, cmd := updateCmd(t, m, key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_CatalogError(t *testing.T) {
	cfg := testConfig("http://example.invalid")
	m := NewModel(cfg, NewClient(cfg))
	m = update(t, m, errorMsg{errors.New("connection refused")})

	if m.form != nil {
		t.Error("no form without a catalog")
	}
	if !m.status.isError || !strings.Contains(m.View(), "connection refused") {
		t.Errorf("error should be shown, view:\n%s", m.View())
	}
}
