package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// CompraListItem is one row of the compras list.
type CompraListItem struct {
	ID        string
	Fecha     string
	Proveedor string
	FormaPago string
	Empleado  string
	Detalles  int
	Total     string // already formatted for display
}

type CompraListData struct {
	Items []CompraListItem
	Total string // sum of all listed compras, formatted
}

func CompraListPage(data CompraListData, nav NavData) templ.Component {
	return Page("Compras", nav, CompraListContent(data))
}

func CompraListContent(data CompraListData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div id="compra-list"><h1>Compras</h1><p><a href="/compras/nueva">Registrar compra</a></p>`)
		if len(data.Items) == 0 {
			h.raw(`<p class="empty">No hay compras registradas.</p></div>`)
			return
		}

		h.raw(`<table><thead><tr><th>Fecha</th><th>Proveedor</th><th>Forma de pago</th><th>Empleado</th><th>Ítems</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, it := range data.Items {
			h.raw("<tr")
			h.attr("id", "compra-"+it.ID)
			h.raw("><td>")
			h.text(it.Fecha)
			h.raw("</td><td>")
			h.text(it.Proveedor)
			h.raw("</td><td>")
			h.text(it.FormaPago)
			h.raw("</td><td>")
			h.text(it.Empleado)
			h.raw("</td><td>", strconv.Itoa(it.Detalles), "</td><td>")
			h.text(it.Total)
			h.raw("</td><td>")
			h.raw("<a")
			h.attr("href", "/compras/"+it.ID+"/edit")
			h.raw(">Editar</a> <a")
			h.attr("href", "/compras/"+it.ID+"/export/excel")
			h.raw(">Excel</a> <a")
			h.attr("href", "/compras/"+it.ID+"/export/pdf")
			h.raw(">PDF</a> <button type=\"button\"")
			h.attr("hx-delete", "/compras/"+it.ID)
			h.attr("hx-target", "#compra-"+it.ID)
			h.attr("hx-swap", "outerHTML")
			h.attr("hx-confirm", "¿Eliminar la compra?")
			h.raw(">Eliminar</button></td></tr>")
		}
		h.raw(`</tbody><tfoot><tr><th colspan="5">Total</th><th>`)
		h.text(data.Total)
		h.raw(`</th><th></th></tr></tfoot></table></div>`)
	})
}
