// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProveedor creates an active supplier with the given name.
func CreateTestProveedor(t *testing.T, app *pocketbase.PocketBase, nombre string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("proveedores")
	if err != nil {
		t.Fatalf("failed to find proveedores collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("nombre", nombre)
	record.Set("cuit", "30-11111111-1")
	record.Set("ciudad", "Rosario")
	record.Set("is_active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test proveedor: %v", err)
	}

	return record
}

// CreateTestInsumo creates a supply with the given unit cost.
func CreateTestInsumo(t *testing.T, app *pocketbase.PocketBase, nombre string, precio float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("insumos")
	if err != nil {
		t.Fatalf("failed to find insumos collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("nombre", nombre)
	record.Set("unidad_medida", "unidad")
	record.Set("precio_costo_unitario", precio)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test insumo: %v", err)
	}

	return record
}

// CreateTestFormaPago creates a payment method record.
func CreateTestFormaPago(t *testing.T, app *pocketbase.PocketBase, nombre string) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("formas_pago")
	if err != nil {
		t.Fatalf("failed to find formas_pago collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("nombre_forma", nombre)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test forma de pago: %v", err)
	}
	return record
}

// CreateTestEmpleado creates an employee record.
func CreateTestEmpleado(t *testing.T, app *pocketbase.PocketBase, nombre, apellido string) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("empleados")
	if err != nil {
		t.Fatalf("failed to find empleados collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("nombre", nombre)
	record.Set("apellido", apellido)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test empleado: %v", err)
	}
	return record
}

// CreateTestCompra creates an order for the given supplier with a stored total.
func CreateTestCompra(t *testing.T, app *pocketbase.PocketBase, proveedorID string, costoTotal float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("compras")
	if err != nil {
		t.Fatalf("failed to find compras collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("proveedor", proveedorID)
	record.Set("fecha_compra", "2026-03-14")
	record.Set("costo_total", costoTotal)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test compra: %v", err)
	}

	return record
}

// CreateTestDetalle creates a detail row of an order.
func CreateTestDetalle(t *testing.T, app *pocketbase.PocketBase, compraID, insumoID string, sortOrder int, cantidad, precio float64) *core.Record {
	t.Helper()
	col, err := app.FindCollectionByNameOrId("detalles_compra")
	if err != nil {
		t.Fatalf("failed to find detalles_compra collection: %v", err)
	}
	record := core.NewRecord(col)
	record.Set("compra", compraID)
	record.Set("insumo", insumoID)
	record.Set("sort_order", sortOrder)
	record.Set("cantidad", cantidad)
	record.Set("precio_unitario", precio)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test detalle: %v", err)
	}
	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
