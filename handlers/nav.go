package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"

	"comprasweb/templates"
)

// BuildNavData counts compras, proveedores and insumos for the header, plus
// the insumos whose stock fell under their minimum.
func BuildNavData(r *http.Request, app *pocketbase.PocketBase) templates.NavData {
	data := templates.NavData{ActivePath: r.URL.Path}

	counts := map[string]*int{
		"compras":     &data.CompraCount,
		"proveedores": &data.ProveedorCount,
		"insumos":     &data.InsumoCount,
	}
	for name, countPtr := range counts {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			continue
		}
		if records, err := app.FindAllRecords(col); err == nil {
			*countPtr = len(records)
		}
	}

	low, err := app.FindRecordsByFilter(
		"insumos",
		"stock_minimo > 0 && stock_actual < stock_minimo",
		"", 0, 0,
	)
	if err == nil {
		data.LowStockCount = len(low)
	}

	return data
}
