package templates

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"comprasweb/orderform"
)

var testSupplies = []orderform.Option{
	{Value: "ins1", Label: "Resma A4"},
	{Value: "ins2", Label: "Tinta <negra>"},
}

func newTestForm() *orderform.Form {
	tmpl := NewRowTemplate(orderform.DefaultPrefix, testSupplies)
	prices := orderform.NewPriceTable(map[string]decimal.Decimal{"ins1": decimal.RequireFromString("15.5")})
	f := orderform.New(prices, tmpl, orderform.DefaultRules())
	f.Supplier = orderform.NewSelect([]orderform.Option{{Value: "p1", Label: "Papelera"}})
	f.PaymentMethod = orderform.NewSelect([]orderform.Option{{Value: "fp1", Label: "Efectivo"}})
	return f
}

func TestNewRowTemplate_Placeholder(t *testing.T) {
	tmpl := NewRowTemplate(orderform.DefaultPrefix, testSupplies)

	for _, frag := range []string{
		`id="row-__prefix__"`,
		`name="detallescompra_set-__prefix__-insumo"`,
		`name="detallescompra_set-__prefix__-cantidad" value="1"`,
		`name="detallescompra_set-__prefix__-subtotal" value="0.00"`,
		`hx-post="/compras/form/rows/__prefix__/delete"`,
		`Tinta &lt;negra&gt;`,
	} {
		if !strings.Contains(tmpl.Markup, frag) {
			t.Errorf("template markup missing %q", frag)
		}
	}
	if strings.Contains(tmpl.Markup, "-DELETE") {
		t.Error("template rows are never persisted and must not carry a DELETE field")
	}
	if len(tmpl.SupplyOptions) != 2 {
		t.Errorf("SupplyOptions = %d, want 2", len(tmpl.SupplyOptions))
	}
}

func TestNewRowTemplate_CreateRowAt(t *testing.T) {
	tmpl := NewRowTemplate(orderform.DefaultPrefix, testSupplies)
	_, markup := tmpl.CreateRowAt(4)

	if strings.Contains(markup, orderform.Placeholder) {
		t.Error("placeholder left in instantiated markup")
	}
	for _, frag := range []string{`id="row-4"`, `detallescompra_set-4-precio_unitario`, `{&#34;row&#34;:&#34;4&#34;}`} {
		if !strings.Contains(markup, frag) {
			t.Errorf("markup missing %q", frag)
		}
	}
}

func TestCompraFormContent_SubmitGate(t *testing.T) {
	f := newTestForm()
	if _, _, err := f.AddRow(); err != nil {
		t.Fatalf("AddRow: %v", err)
	}

	body := renderString(CompraFormContent(CompraFormData{Form: f, ShowIssues: true}))
	for _, frag := range []string{
		`id="compra-form-container"`,
		`action="/compras"`,
		`name="detallescompra_set-TOTAL_FORMS" value="1"`,
		`name="detallescompra_set-INITIAL_FORMS" value="0"`,
		`id="formset-empty"`,
		`<button type="submit" id="submit-compra" disabled`,
		`Seleccione un proveedor`,
	} {
		if !strings.Contains(body, frag) {
			t.Errorf("form missing %q", frag)
		}
	}

	f.Supplier.Value = "p1"
	f.PaymentMethod.Value = "fp1"
	r := f.LastRow()
	r.Supply.Value = "ins1"
	f.RecomputeRow(r)

	body = renderString(CompraFormContent(CompraFormData{CompraID: "c1", Form: f}))
	for _, frag := range []string{
		`action="/compras/c1/save"`,
		`<option value="p1" selected>Papelera</option>`,
		`name="detallescompra_set-0-precio_unitario" value="15.50"`,
		`<span id="total-compra">15.50</span>`,
	} {
		if !strings.Contains(body, frag) {
			t.Errorf("form missing %q", frag)
		}
	}
	if strings.Contains(body, `id="submit-compra" disabled`) {
		t.Error("submit should be enabled for a valid form")
	}
}

func TestDetalleRow_PersistedHidden(t *testing.T) {
	f := newTestForm()
	r := orderform.NewRow(2, testSupplies)
	r.ID = "det1"
	r.Persisted = true
	f.Rows = append(f.Rows, r)
	f.TotalForms = 3
	if err := f.DeleteRow(2); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}

	body := renderString(DetalleRow(f, r))
	for _, frag := range []string{
		`id="row-2" class="detalle-row" style="display:none"`,
		`name="detallescompra_set-2-id" value="det1"`,
		`name="detallescompra_set-2-DELETE" checked`,
		`<template><input type="hidden" id="id_detallescompra_set-TOTAL_FORMS" name="detallescompra_set-TOTAL_FORMS" value="3" hx-swap-oob="true">`,
		`<span id="total-compra" hx-swap-oob="true">0.00</span>`,
	} {
		if !strings.Contains(body, frag) {
			t.Errorf("row response missing %q\n%s", frag, body)
		}
	}
}

func TestCompraListContent(t *testing.T) {
	empty := renderString(CompraListContent(CompraListData{}))
	if !strings.Contains(empty, "No hay compras registradas.") {
		t.Error("expected empty state")
	}

	body := renderString(CompraListContent(CompraListData{
		Items: []CompraListItem{{ID: "c1", Fecha: "2026-03-14", Proveedor: "A & B", Detalles: 2, Total: "$ 10,00"}},
		Total: "$ 10,00",
	}))
	for _, frag := range []string{`id="compra-c1"`, "A &amp; B", `href="/compras/c1/export/pdf"`, "$ 10,00"} {
		if !strings.Contains(body, frag) {
			t.Errorf("list missing %q", frag)
		}
	}
}

func TestPage_Nav(t *testing.T) {
	body := renderString(Page("Compras", NavData{ActivePath: "/compras", CompraCount: 3, LowStockCount: 1}, nil))
	for _, frag := range []string{"<title>Compras · Tinta Negra</title>", `href="/compras" class="active"`, `<span class="badge">3</span>`, "1 con stock bajo"} {
		if !strings.Contains(body, frag) {
			t.Errorf("page missing %q", frag)
		}
	}
}
