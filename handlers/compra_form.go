package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"comprasweb/orderform"
	"comprasweb/services"
	"comprasweb/templates"
)

// formOptions loads the catalog and the row template every order form
// request starts from.
func formOptions(app *pocketbase.PocketBase) (orderform.FormOptions, error) {
	catalog, err := services.LoadCatalog(app)
	if err != nil {
		return orderform.FormOptions{}, err
	}
	opts := catalog.FormOptions(orderform.DefaultRules())
	opts.Template = templates.NewRowTemplate(opts.Prefix, catalog.Supplies)
	return opts, nil
}

// parsePostedForm reads the order form carried by the request body.
func parsePostedForm(e *core.RequestEvent, opts orderform.FormOptions) (*orderform.Form, error) {
	if err := e.Request.ParseForm(); err != nil {
		return nil, err
	}
	return orderform.ParseForm(e.Request.PostForm, opts), nil
}

// compraValues renders a stored compra and its detalles as submitted form
// values, so edit pages go through the same ParseForm path as posts.
func compraValues(app *pocketbase.PocketBase, compra *core.Record, prefix string) (url.Values, error) {
	v := url.Values{}
	v.Set(orderform.FieldSupplier, compra.GetString("proveedor"))
	v.Set(orderform.FieldPaymentMethod, compra.GetString("forma_pago"))
	v.Set(orderform.FieldEmployee, compra.GetString("empleado"))

	detalles, err := app.FindRecordsByFilter(
		"detalles_compra",
		"compra = {:compraId}",
		"sort_order",
		0, 0,
		map[string]any{"compraId": compra.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("load detalles of compra %s: %w", compra.Id, err)
	}

	key := func(i int, field string) string {
		return prefix + "-" + strconv.Itoa(i) + "-" + field
	}
	for i, d := range detalles {
		v.Set(key(i, orderform.RowFieldID), d.Id)
		v.Set(key(i, orderform.RowFieldSupply), d.GetString("insumo"))
		v.Set(key(i, orderform.RowFieldQuantity), decimal.NewFromFloat(d.GetFloat("cantidad")).String())
		v.Set(key(i, orderform.RowFieldPrice), orderform.FormatAmount(decimal.NewFromFloat(d.GetFloat("precio_unitario"))))
		v.Set(key(i, orderform.RowFieldSubtotal), "")
	}
	v.Set(prefix+"-TOTAL_FORMS", strconv.Itoa(len(detalles)))
	v.Set(prefix+"-INITIAL_FORMS", strconv.Itoa(len(detalles)))
	return v, nil
}

// renderCompraForm writes the form block for HTMX requests and the full page
// otherwise.
func renderCompraForm(e *core.RequestEvent, data templates.CompraFormData) error {
	var component templ.Component
	if isHTMX(e.Request) {
		component = templates.CompraFormContent(data)
	} else {
		component = templates.CompraFormPage(data, GetNavData(e.Request))
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleCompraCreate renders an empty order form with one blank row.
func HandleCompraCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		opts, err := formOptions(app)
		if err != nil {
			log.Printf("compra_form: could not load catalog: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo cargar el formulario")
		}

		form := orderform.ParseForm(url.Values{}, opts)
		form.Initialize()
		if _, _, err := form.AddRow(); err != nil {
			log.Printf("compra_form: could not add first row: %v", err)
		}

		return renderCompraForm(e, templates.CompraFormData{Form: form})
	}
}

// HandleCompraEdit renders a stored compra with its detail rows.
func HandleCompraEdit(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")

		compra, err := app.FindRecordById("compras", id)
		if err != nil {
			return e.String(http.StatusNotFound, "Compra no encontrada")
		}

		opts, err := formOptions(app)
		if err != nil {
			log.Printf("compra_edit: could not load catalog: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo cargar el formulario")
		}

		values, err := compraValues(app, compra, opts.Prefix)
		if err != nil {
			log.Printf("compra_edit: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo cargar la compra")
		}

		form := orderform.ParseForm(values, opts)
		form.Initialize()

		return renderCompraForm(e, templates.CompraFormData{CompraID: compra.Id, Form: form})
	}
}
