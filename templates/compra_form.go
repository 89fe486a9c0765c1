package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"comprasweb/orderform"
)

// Element ids shared by the page, the row commands and their responses.
const (
	FormContainerID  = "compra-form-container"
	FormID           = "compra-form"
	RowsBodyID       = "detalle-body"
	TemplateID       = "formset-empty"
	TotalID          = "total-compra"
	SubmitID         = "submit-compra"
	IssuesID         = "form-issues"
	InsumoModalID    = "insumo-modal"
	ProveedorModalID = "proveedor-modal"
)

// CompraFormData drives the order form page.
type CompraFormData struct {
	CompraID   string // "" for a new compra
	Form       *orderform.Form
	ShowIssues bool
}

func (d CompraFormData) action() string {
	if d.CompraID == "" {
		return "/compras"
	}
	return "/compras/" + d.CompraID + "/save"
}

func (d CompraFormData) title() string {
	if d.CompraID == "" {
		return "Nueva compra"
	}
	return "Editar compra"
}

// CompraFormPage is the full page around CompraFormContent.
func CompraFormPage(data CompraFormData, nav NavData) templ.Component {
	return Page(data.title(), nav, CompraFormContent(data))
}

// CompraFormContent renders the order form, its row template and the
// quick-create modals. Row commands and submits swap this whole block.
func CompraFormContent(data CompraFormData) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		f := data.Form
		h.raw("<div")
		h.attr("id", FormContainerID)
		h.raw("><h1>")
		h.text(data.title())
		h.raw("</h1>")

		h.raw("<form")
		h.attr("id", FormID)
		h.attr("method", "post")
		h.attr("action", data.action())
		h.attr("hx-post", data.action())
		h.attr("hx-target", "#"+FormContainerID)
		h.attr("hx-swap", "outerHTML")
		h.raw(">")
		if data.CompraID != "" {
			h.raw(`<input type="hidden" name="compra_id"`)
			h.attr("value", data.CompraID)
			h.raw(">")
		}

		writeIssues(h, f, data.ShowIssues, false)

		h.raw(`<div class="header-fields">`)
		writeHeaderSelect(h, orderform.FieldSupplier, "Proveedor", f.Supplier, ProveedorModalID)
		writeHeaderSelect(h, orderform.FieldPaymentMethod, "Forma de pago", f.PaymentMethod, "")
		writeHeaderSelect(h, orderform.FieldEmployee, "Empleado", f.Employee, "")
		h.raw(`</div>`)

		writeManagement(h, f, false)

		h.raw(`<table><thead><tr><th>Insumo</th><th>Cantidad</th><th>Precio unitario</th><th>Subtotal</th><th></th></tr></thead>`)
		h.raw("<tbody")
		h.attr("id", RowsBodyID)
		h.raw(">")
		for _, r := range f.Rows {
			writeRow(h, f, strconv.Itoa(r.Index), r)
		}
		h.raw("</tbody></table>")

		if f.Template != nil {
			h.raw("<template")
			h.attr("id", TemplateID)
			h.raw(">", f.Template.Markup, "</template>")

			h.raw(`<button type="button" id="add-row"`)
			h.attr("hx-post", "/compras/form/rows")
			h.attr("hx-include", "#"+FormID)
			h.attr("hx-target", "#"+RowsBodyID)
			h.attr("hx-swap", "beforeend")
			h.raw(">Agregar insumo</button> ")
		}
		h.raw(`<button type="button"`)
		h.attr("onclick", "document.getElementById('"+InsumoModalID+"').showModal()")
		h.raw(">Nuevo insumo</button>")

		h.raw(`<p class="total">Total: $ `)
		writeTotal(h, f, false)
		h.raw("</p>")
		writeSubmit(h, f, false)
		h.raw("</form>")

		writeInsumoModal(h)
		writeProveedorModal(h)
		h.raw("</div>")
	})
}

// DetalleRow renders one detail row followed by the out-of-band form state,
// the response to a recalc or delete command.
func DetalleRow(f *orderform.Form, r *orderform.Row) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		writeRow(h, f, strconv.Itoa(r.Index), r)
		writeState(h, f)
	})
}

// NewRowMarkup is the response to an add-row command: the markup produced
// from the row template followed by the out-of-band form state.
func NewRowMarkup(f *orderform.Form, markup string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(markup)
		writeState(h, f)
	})
}

// FormState renders only the out-of-band counters, total and submit gate.
func FormState(f *orderform.Form) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		writeState(h, f)
	})
}

// NewRowTemplate builds the row template offered by a form, with the
// placeholder in every name and id.
func NewRowTemplate(prefix string, supplies []orderform.Option) *orderform.RowTemplate {
	f := orderform.New(nil, nil, orderform.Rules{})
	f.Prefix = prefix
	blank := orderform.NewRow(0, supplies)
	blank.Quantity = "1"
	blank.Subtotal = orderform.FormatAmount(blank.SubtotalValue())

	markup := renderString(component(func(ctx context.Context, h *htmlWriter) {
		writeRow(h, f, orderform.Placeholder, blank)
	}))
	return &orderform.RowTemplate{Markup: markup, SupplyOptions: supplies}
}

// writeState emits the out-of-band elements wrapped in a template so they
// survive being parsed next to table rows.
func writeState(h *htmlWriter, f *orderform.Form) {
	h.raw("<template>")
	writeManagement(h, f, true)
	writeTotal(h, f, true)
	writeSubmit(h, f, true)
	writeIssues(h, f, false, true)
	h.raw("</template>")
}

func oob(h *htmlWriter, on bool) {
	if on {
		h.attr("hx-swap-oob", "true")
	}
}

func writeManagement(h *htmlWriter, f *orderform.Form, swap bool) {
	h.raw(`<input type="hidden"`)
	h.attr("id", "id_"+f.TotalFormsName())
	h.attr("name", f.TotalFormsName())
	h.attr("value", strconv.Itoa(f.TotalForms))
	oob(h, swap)
	h.raw(">")
	if !swap {
		h.raw(`<input type="hidden"`)
		h.attr("id", "id_"+f.InitialFormsName())
		h.attr("name", f.InitialFormsName())
		h.attr("value", strconv.Itoa(f.InitialForms))
		h.raw(">")
	}
}

func writeTotal(h *htmlWriter, f *orderform.Form, swap bool) {
	h.raw("<span")
	h.attr("id", TotalID)
	oob(h, swap)
	h.raw(">")
	h.text(orderform.FormatAmount(f.Total))
	h.raw("</span>")
}

func writeSubmit(h *htmlWriter, f *orderform.Form, swap bool) {
	h.raw(`<button type="submit"`)
	h.attr("id", SubmitID)
	h.flag("disabled", !f.SubmitEnabled)
	if issues := f.Issues(); len(issues) > 0 {
		h.attr("title", issues[0].String())
	}
	oob(h, swap)
	h.raw(">Registrar compra</button>")
}

func writeIssues(h *htmlWriter, f *orderform.Form, show, swap bool) {
	h.raw(`<div class="issues"`)
	h.attr("id", IssuesID)
	oob(h, swap)
	h.raw(">")
	if show {
		issues := f.Issues()
		if len(issues) > 0 {
			h.raw("<ul>")
			for _, is := range issues {
				h.raw("<li>")
				h.text(is.String())
				h.raw("</li>")
			}
			h.raw("</ul>")
		}
	}
	h.raw("</div>")
}

func writeHeaderSelect(h *htmlWriter, name, label string, s orderform.Select, modalID string) {
	h.raw("<label>")
	h.text(label)
	h.raw(" <select")
	h.attr("name", name)
	h.attr("id", "id_"+name)
	h.attr("hx-post", "/compras/form/recalc")
	h.attr("hx-trigger", "change")
	h.attr("hx-include", "#"+FormID)
	h.attr("hx-swap", "none")
	h.raw(">")
	writeOptions(h, s)
	h.raw("</select></label>")
	if modalID != "" {
		h.raw(` <button type="button"`)
		h.attr("onclick", "document.getElementById('"+modalID+"').showModal()")
		h.raw(">+</button>")
	}
	h.raw(" ")
}

func writeOptions(h *htmlWriter, s orderform.Select) {
	h.raw(`<option value="">---------</option>`)
	for _, o := range s.Options {
		h.raw("<option")
		h.attr("value", o.Value)
		h.flag("selected", o.Value == s.Value)
		h.raw(">")
		h.text(o.Label)
		h.raw("</option>")
	}
}

// writeRow renders a detail row. idx is the formset index, or the template
// placeholder.
func writeRow(h *htmlWriter, f *orderform.Form, idx string, r *orderform.Row) {
	rowID := "row-" + idx
	name := func(field string) string {
		return f.Prefix + "-" + idx + "-" + field
	}
	recalc := func() {
		h.attr("hx-post", "/compras/form/recalc")
		h.attr("hx-trigger", "change")
		h.attr("hx-include", "#"+FormID)
		h.attr("hx-target", "#"+rowID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-vals", `{"row":"`+idx+`"}`)
	}

	h.raw("<tr")
	h.attr("id", rowID)
	h.attr("class", "detalle-row")
	if r.Hidden {
		h.attr("style", "display:none")
	}
	h.raw("><td>")
	if r.ID != "" {
		h.raw(`<input type="hidden"`)
		h.attr("name", name(orderform.RowFieldID))
		h.attr("value", r.ID)
		h.raw(">")
	}
	h.raw(`<select class="detalle-insumo"`)
	h.attr("name", name(orderform.RowFieldSupply))
	recalc()
	h.raw(">")
	writeOptions(h, r.Supply)
	h.raw("</select></td>")

	h.raw(`<td><input type="number" step="any" min="0" class="detalle-cantidad"`)
	h.attr("name", name(orderform.RowFieldQuantity))
	h.attr("value", r.Quantity)
	recalc()
	h.raw("></td>")

	h.raw(`<td><input type="number" step="0.01" min="0" class="detalle-precio"`)
	h.attr("name", name(orderform.RowFieldPrice))
	h.attr("value", r.Price)
	recalc()
	h.raw("></td>")

	h.raw(`<td><input type="text" readonly class="detalle-subtotal"`)
	h.attr("name", name(orderform.RowFieldSubtotal))
	h.attr("value", r.Subtotal)
	h.raw("></td><td>")

	if r.Persisted {
		h.raw(`<input type="checkbox"`)
		h.attr("name", name(orderform.RowFieldDelete))
		h.flag("checked", r.Deleted)
		recalc()
		h.raw("> ")
	}
	h.raw(`<button type="button" class="btn-eliminar"`)
	h.attr("hx-post", "/compras/form/rows/"+idx+"/delete")
	h.attr("hx-include", "#"+FormID)
	h.attr("hx-target", "#"+rowID)
	h.attr("hx-swap", "outerHTML")
	h.raw(">Eliminar</button></td></tr>")
}

func writeInsumoModal(h *htmlWriter) {
	h.raw("<dialog")
	h.attr("id", InsumoModalID)
	h.raw(`><form id="insumo-form"`)
	h.attr("hx-post", "/compras/form/insumos")
	h.attr("hx-include", "#"+FormID)
	h.attr("hx-target", "#"+FormContainerID)
	h.attr("hx-swap", "outerHTML")
	h.raw("><h2>Nuevo insumo</h2>")
	h.raw(`<label>Nombre <input name="nombre" required></label>`)
	h.raw(`<label>Precio de costo <input name="precio_costo_unitario" type="number" step="0.01" min="0" required></label>`)
	h.raw(`<label>Unidad de medida <input name="unidad_medida"></label>`)
	h.raw(`<label>Descripción <input name="descripcion"></label>`)
	h.raw(`<button type="submit">Guardar</button> <button type="button" onclick="this.closest('dialog').close()">Cancelar</button>`)
	h.raw("</form></dialog>")
}

func writeProveedorModal(h *htmlWriter) {
	h.raw("<dialog")
	h.attr("id", ProveedorModalID)
	h.raw(`><form id="proveedor-form"`)
	h.attr("hx-post", "/compras/form/proveedores")
	h.attr("hx-include", "#"+FormID)
	h.attr("hx-target", "#"+FormContainerID)
	h.attr("hx-swap", "outerHTML")
	h.raw("><h2>Nuevo proveedor</h2>")
	h.raw(`<label>Nombre <input name="nombre" required></label>`)
	h.raw(`<label>CUIT <input name="cuit"></label>`)
	h.raw(`<label>Teléfono <input name="telefono"></label>`)
	h.raw(`<label>Email <input name="email" type="email"></label>`)
	h.raw(`<label>Ciudad <input name="ciudad"></label>`)
	h.raw(`<button type="submit">Guardar</button> <button type="button" onclick="this.closest('dialog').close()">Cancelar</button>`)
	h.raw("</form></dialog>")
}
