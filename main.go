package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/collections"
	"comprasweb/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateCompraTotals(app); err != nil {
			log.Printf("Warning: compra totals migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Header counters for full pages
		se.Router.BindFunc(handlers.NavMiddleware(app))

		// ── Compras ──────────────────────────────────────────────
		se.Router.GET("/compras", handlers.HandleCompraList(app))
		se.Router.GET("/compras/nueva", handlers.HandleCompraCreate(app))
		se.Router.POST("/compras", handlers.HandleCompraSave(app))
		se.Router.GET("/compras/{id}/edit", handlers.HandleCompraEdit(app))
		se.Router.POST("/compras/{id}/save", handlers.HandleCompraUpdate(app))
		se.Router.DELETE("/compras/{id}", handlers.HandleCompraDelete(app))

		// Export
		se.Router.GET("/compras/{id}/export/excel", handlers.HandleCompraExportExcel(app))
		se.Router.GET("/compras/{id}/export/pdf", handlers.HandleCompraExportPDF(app))

		// ── Order form commands (nothing is stored) ─────────────
		se.Router.POST("/compras/form/rows", handlers.HandleRowAdd(app))
		se.Router.POST("/compras/form/rows/{index}/delete", handlers.HandleRowDelete(app))
		se.Router.POST("/compras/form/recalc", handlers.HandleRowRecalc(app))

		// Quick-create modals embedded in the order form
		se.Router.POST("/compras/form/insumos", handlers.HandleFormInsumoCreate(app))
		se.Router.POST("/compras/form/proveedores", handlers.HandleFormProveedorCreate(app))

		// ── Background creation endpoints (JSON) ────────────────
		se.Router.POST("/insumos/quick", handlers.HandleInsumoQuick(app))
		se.Router.POST("/proveedores/quick", handlers.HandleProveedorQuick(app))

		// Catalog for the terminal client
		se.Router.GET("/api/compras/form", handlers.HandleFormBootstrap(app))

		// Redirect home to compras list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/compras")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
