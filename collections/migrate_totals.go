package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/shopspring/decimal"
)

// MigrateCompraTotals backfills costo_total on compras that were stored with
// a zero total but do have detail rows. Safe to call on every startup.
func MigrateCompraTotals(app *pocketbase.PocketBase) error {
	comprasCol, err := app.FindCollectionByNameOrId("compras")
	if err != nil {
		return fmt.Errorf("migrate: could not find compras collection: %w", err)
	}
	detallesCol, err := app.FindCollectionByNameOrId("detalles_compra")
	if err != nil {
		return fmt.Errorf("migrate: could not find detalles_compra collection: %w", err)
	}

	stale, err := app.FindRecordsByFilter(comprasCol, "costo_total = 0", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query compras: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	fixed := 0
	for _, compra := range stale {
		detalles, err := app.FindRecordsByFilter(
			detallesCol,
			"compra = {:compraId}",
			"sort_order",
			0, 0,
			map[string]any{"compraId": compra.Id},
		)
		if err != nil {
			log.Printf("migrate: failed to load detalles for compra %s: %v\n", compra.Id, err)
			continue
		}
		if len(detalles) == 0 {
			continue
		}

		total := decimal.Zero
		for _, d := range detalles {
			qty := decimal.NewFromFloat(d.GetFloat("cantidad"))
			price := decimal.NewFromFloat(d.GetFloat("precio_unitario"))
			total = total.Add(qty.Mul(price).Round(2))
		}

		compra.Set("costo_total", total.Round(2).InexactFloat64())
		if err := app.Save(compra); err != nil {
			log.Printf("migrate: failed to update costo_total of compra %s: %v\n", compra.Id, err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("migrate: recomputed costo_total for %d compra(s).\n", fixed)
	}
	return nil
}
