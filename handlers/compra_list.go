package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"comprasweb/services"
	"comprasweb/templates"
)

// HandleCompraList renders every compra, newest first, with totals computed
// from their detail lines.
func HandleCompraList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		compras, err := app.FindRecordsByFilter("compras", "1=1", "-fecha_compra,-created", 0, 0)
		if err != nil {
			log.Printf("compra_list: could not query compras: %v", err)
			compras = nil
		}

		names := map[string]map[string]string{}
		lookup := func(collection, id string, label func(*core.Record) string) string {
			if id == "" {
				return "—"
			}
			if names[collection] == nil {
				names[collection] = map[string]string{}
			}
			if n, ok := names[collection][id]; ok {
				return n
			}
			n := "—"
			if r, err := app.FindRecordById(collection, id); err != nil {
				log.Printf("compra_list: could not find %s %s: %v", collection, id, err)
			} else {
				n = label(r)
			}
			names[collection][id] = n
			return n
		}
		byNombre := func(field string) func(*core.Record) string {
			return func(r *core.Record) string { return r.GetString(field) }
		}
		fullName := func(r *core.Record) string {
			return strings.TrimSpace(r.GetString("nombre") + " " + r.GetString("apellido"))
		}

		grand := decimal.Zero
		var items []templates.CompraListItem
		for _, c := range compras {
			detalles, err := app.FindRecordsByFilter(
				"detalles_compra",
				"compra = {:compraId}",
				"",
				0,
				0,
				map[string]any{"compraId": c.Id},
			)
			if err != nil {
				log.Printf("compra_list: could not query detalles for compra %s: %v", c.Id, err)
				detalles = nil
			}

			amounts := make([]services.DetalleAmount, 0, len(detalles))
			for _, d := range detalles {
				amounts = append(amounts, services.DetalleAmount{
					Cantidad: d.GetFloat("cantidad"),
					Precio:   d.GetFloat("precio_unitario"),
				})
			}
			totals := services.CalcCompraTotals(amounts)
			grand = grand.Add(totals.Total)

			items = append(items, templates.CompraListItem{
				ID:        c.Id,
				Fecha:     c.GetString("fecha_compra"),
				Proveedor: lookup("proveedores", c.GetString("proveedor"), byNombre("nombre")),
				FormaPago: lookup("formas_pago", c.GetString("forma_pago"), byNombre("nombre_forma")),
				Empleado:  lookup("empleados", c.GetString("empleado"), fullName),
				Detalles:  totals.Items,
				Total:     services.FormatARS(totals.Total),
			})
		}

		data := templates.CompraListData{Items: items, Total: services.FormatARS(grand)}

		var component templ.Component
		if isHTMX(e.Request) {
			component = templates.CompraListContent(data)
		} else {
			component = templates.CompraListPage(data, GetNavData(e.Request))
		}
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleCompraDelete removes a compra; its detalles go with it by cascade.
// HTMX callers get an empty body that replaces the list row.
func HandleCompraDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		compra, err := app.FindRecordById("compras", id)
		if err != nil {
			return ErrorToast(e, http.StatusNotFound, "Compra no encontrada")
		}

		if err := app.Delete(compra); err != nil {
			log.Printf("compra_delete: could not delete compra %s: %v", id, err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo salió mal. Intente nuevamente.")
		}

		SetToast(e, ToastSuccess, "Compra eliminada")

		if isHTMX(e.Request) {
			return e.String(http.StatusOK, "")
		}
		return e.Redirect(http.StatusFound, "/compras")
	}
}
