package collections_test

import (
	"testing"

	"comprasweb/collections"
	"comprasweb/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"proveedores",
	"insumos",
	"formas_pago",
	"empleados",
	"compras",
	"detalles_compra",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_Fields(t *testing.T) {
	tests := []struct {
		collection string
		fields     []string
	}{
		{"proveedores", []string{"nombre", "razon_social", "cuit", "telefono", "email", "direccion", "ciudad", "categoria", "is_active"}},
		{"insumos", []string{"nombre", "descripcion", "unidad_medida", "stock_actual", "stock_minimo", "precio_costo_unitario", "proveedor"}},
		{"formas_pago", []string{"nombre_forma"}},
		{"empleados", []string{"nombre", "apellido", "cargo"}},
		{"compras", []string{"proveedor", "forma_pago", "empleado", "fecha_compra", "costo_total"}},
		{"detalles_compra", []string{"compra", "insumo", "sort_order", "cantidad", "precio_unitario"}},
	}

	app := testhelpers.NewTestApp(t)
	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			col, err := app.FindCollectionByNameOrId(tt.collection)
			if err != nil {
				t.Fatalf("collection not found: %v", err)
			}
			for _, f := range tt.fields {
				if col.Fields.GetByName(f) == nil {
					t.Errorf("%s: missing field %q", tt.collection, f)
				}
			}
		})
	}
}

func TestSetup_DetallesCascadeFromCompra(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("detalles_compra")

	field, ok := col.Fields.GetByName("compra").(*core.RelationField)
	if !ok {
		t.Fatal("detalles_compra.compra is not a relation field")
	}
	if !field.CascadeDelete {
		t.Error("detalles_compra.compra should cascade on delete")
	}
	if !field.Required {
		t.Error("detalles_compra.compra should be required")
	}
}

func TestSetup_InsumoPriceOptional(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("insumos")

	field, ok := col.Fields.GetByName("precio_costo_unitario").(*core.NumberField)
	if !ok {
		t.Fatal("insumos.precio_costo_unitario is not a number field")
	}
	if field.Required {
		t.Error("precio_costo_unitario must accept zero, so it cannot be required")
	}
}
