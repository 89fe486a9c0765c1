package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type proveedorDef struct {
	nombre      string
	razonSocial string
	cuit        string
	telefono    string
	ciudad      string
	categoria   string
	insumos     []insumoDef
}

type insumoDef struct {
	nombre       string
	unidadMedida string
	stockActual  int
	stockMinimo  int
	precioCosto  float64
}

var seedFormasPago = []string{"Efectivo", "Transferencia", "Tarjeta de débito", "Cheque"}

var seedEmpleados = [][2]string{
	{"Lucía", "Fernández"},
	{"Martín", "Gómez"},
}

var seedProveedores = []proveedorDef{
	{
		nombre:      "Papelera del Sur",
		razonSocial: "Papelera del Sur S.R.L.",
		cuit:        "30-71234567-8",
		telefono:    "0291-4551234",
		ciudad:      "Bahía Blanca",
		categoria:   "Papel",
		insumos: []insumoDef{
			{"Papel obra 80g A4 (resma)", "resma", 40, 10, 5200},
			{"Papel ilustración 150g A3 (resma)", "resma", 12, 4, 18900},
		},
	},
	{
		nombre:      "Tintas Andinas",
		razonSocial: "Tintas Andinas S.A.",
		cuit:        "30-70987654-3",
		telefono:    "0261-4229876",
		ciudad:      "Mendoza",
		categoria:   "Tintas",
		insumos: []insumoDef{
			{"Tinta offset negra 1kg", "kg", 8, 2, 15500},
			{"Tinta offset cyan 1kg", "kg", 5, 2, 16250.50},
		},
	},
}

// Seed populates the lookup collections and a few suppliers and supplies.
// It is safe to call on every startup because it returns early if any
// proveedores records already exist.
func Seed(app *pocketbase.PocketBase) error {
	proveedoresCol, err := app.FindCollectionByNameOrId("proveedores")
	if err != nil {
		return fmt.Errorf("seed: could not find proveedores collection: %w", err)
	}
	existing, err := app.FindAllRecords(proveedoresCol)
	if err != nil {
		return fmt.Errorf("seed: could not query proveedores: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("seed: proveedores collection is empty – inserting seed data …")

	insumosCol, err := app.FindCollectionByNameOrId("insumos")
	if err != nil {
		return fmt.Errorf("seed: could not find insumos collection: %w", err)
	}
	formasCol, err := app.FindCollectionByNameOrId("formas_pago")
	if err != nil {
		return fmt.Errorf("seed: could not find formas_pago collection: %w", err)
	}
	empleadosCol, err := app.FindCollectionByNameOrId("empleados")
	if err != nil {
		return fmt.Errorf("seed: could not find empleados collection: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		for _, nombre := range seedFormasPago {
			rec := core.NewRecord(formasCol)
			rec.Set("nombre_forma", nombre)
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("seed: forma de pago %q: %w", nombre, err)
			}
		}

		for _, e := range seedEmpleados {
			rec := core.NewRecord(empleadosCol)
			rec.Set("nombre", e[0])
			rec.Set("apellido", e[1])
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("seed: empleado %s %s: %w", e[0], e[1], err)
			}
		}

		for _, p := range seedProveedores {
			prov := core.NewRecord(proveedoresCol)
			prov.Set("nombre", p.nombre)
			prov.Set("razon_social", p.razonSocial)
			prov.Set("cuit", p.cuit)
			prov.Set("telefono", p.telefono)
			prov.Set("ciudad", p.ciudad)
			prov.Set("categoria", p.categoria)
			prov.Set("is_active", true)
			if err := txApp.Save(prov); err != nil {
				return fmt.Errorf("seed: proveedor %q: %w", p.nombre, err)
			}

			for _, i := range p.insumos {
				ins := core.NewRecord(insumosCol)
				ins.Set("nombre", i.nombre)
				ins.Set("unidad_medida", i.unidadMedida)
				ins.Set("stock_actual", i.stockActual)
				ins.Set("stock_minimo", i.stockMinimo)
				ins.Set("precio_costo_unitario", i.precioCosto)
				ins.Set("proveedor", prov.Id)
				if err := txApp.Save(ins); err != nil {
					return fmt.Errorf("seed: insumo %q: %w", i.nombre, err)
				}
			}
		}
		return nil
	})
}
