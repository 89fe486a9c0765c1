package handlers

import (
	"log"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"

	"comprasweb/orderform"
	"comprasweb/quickcreate"
	"comprasweb/templates"
)

const (
	msgRequired      = "Este campo es obligatorio."
	msgInvalidNumber = "Introduzca un número válido."
	msgNegative      = "Asegúrese de que este valor sea mayor o igual a 0."
	msgInvalidChoice = "Seleccione una opción válida."
	msgInvalidEmail  = "Introduzca una dirección de correo válida."
)

var insumoFields = []string{"nombre", "precio_costo_unitario", "unidad_medida", "descripcion"}

var proveedorFields = []string{"nombre", "cuit", "telefono", "email", "direccion", "ciudad", "categoria"}

// createInsumo validates and stores a supply. It answers with the
// acknowledgement the creation endpoints send, and a non-nil error only for
// storage failures.
func createInsumo(app *pocketbase.PocketBase, values url.Values) (quickcreate.Response, error) {
	errs := make(map[string][]string)

	nombre := strings.TrimSpace(values.Get("nombre"))
	if nombre == "" {
		errs["nombre"] = append(errs["nombre"], msgRequired)
	}

	var precio decimal.Decimal
	rawPrecio := strings.TrimSpace(values.Get("precio_costo_unitario"))
	switch p, err := decimal.NewFromString(rawPrecio); {
	case rawPrecio == "":
		errs["precio_costo_unitario"] = append(errs["precio_costo_unitario"], msgRequired)
	case err != nil:
		errs["precio_costo_unitario"] = append(errs["precio_costo_unitario"], msgInvalidNumber)
	case p.IsNegative():
		errs["precio_costo_unitario"] = append(errs["precio_costo_unitario"], msgNegative)
	default:
		precio = p.Round(2)
	}

	proveedorID := strings.TrimSpace(values.Get("proveedor"))
	if proveedorID != "" {
		if _, err := app.FindRecordById("proveedores", proveedorID); err != nil {
			errs["proveedor"] = append(errs["proveedor"], msgInvalidChoice)
		}
	}

	if len(errs) > 0 {
		return quickcreate.Failed(errs, ""), nil
	}

	col, err := app.FindCollectionByNameOrId("insumos")
	if err != nil {
		return quickcreate.Response{}, err
	}
	record := core.NewRecord(col)
	record.Set("nombre", nombre)
	record.Set("precio_costo_unitario", precio.InexactFloat64())
	record.Set("unidad_medida", strings.TrimSpace(values.Get("unidad_medida")))
	record.Set("descripcion", strings.TrimSpace(values.Get("descripcion")))
	record.Set("proveedor", proveedorID)
	if err := app.Save(record); err != nil {
		return quickcreate.Response{}, err
	}

	resp := quickcreate.Succeeded(record.Id, nombre)
	resp.PrecioCostoUnitario = quickcreate.FlexString(orderform.FormatAmount(precio))
	return resp, nil
}

// createProveedor validates and stores a supplier.
func createProveedor(app *pocketbase.PocketBase, values url.Values) (quickcreate.Response, error) {
	errs := make(map[string][]string)

	nombre := strings.TrimSpace(values.Get("nombre"))
	if nombre == "" {
		errs["nombre"] = append(errs["nombre"], msgRequired)
	}
	email := strings.TrimSpace(values.Get("email"))
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			errs["email"] = append(errs["email"], msgInvalidEmail)
		}
	}

	if len(errs) > 0 {
		return quickcreate.Failed(errs, ""), nil
	}

	col, err := app.FindCollectionByNameOrId("proveedores")
	if err != nil {
		return quickcreate.Response{}, err
	}
	record := core.NewRecord(col)
	for _, f := range proveedorFields {
		record.Set(f, strings.TrimSpace(values.Get(f)))
	}
	record.Set("is_active", true)
	if err := app.Save(record); err != nil {
		return quickcreate.Response{}, err
	}

	return quickcreate.Succeeded(record.Id, nombre), nil
}

// quickJSON writes a creation acknowledgement. Rejections use 400 and
// storage failures 500; callers only look at the body.
func quickJSON(e *core.RequestEvent, resp quickcreate.Response, err error, where string) error {
	if err != nil {
		log.Printf("%s: could not save: %v", where, err)
		return e.JSON(http.StatusInternalServerError, quickcreate.Failed(nil, quickcreate.GenericFailure))
	}
	if !resp.Success {
		return e.JSON(http.StatusBadRequest, resp)
	}
	return e.JSON(http.StatusOK, resp)
}

// HandleInsumoQuick creates a supply from a modal form and answers with JSON.
func HandleInsumoQuick(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.JSON(http.StatusBadRequest, quickcreate.Failed(nil, "Datos de formulario inválidos"))
		}
		resp, err := createInsumo(app, e.Request.PostForm)
		return quickJSON(e, resp, err, "insumo_quick")
	}
}

// HandleProveedorQuick creates a supplier from a modal form and answers with
// JSON.
func HandleProveedorQuick(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return e.JSON(http.StatusBadRequest, quickcreate.Failed(nil, "Datos de formulario inválidos"))
		}
		resp, err := createProveedor(app, e.Request.PostForm)
		return quickJSON(e, resp, err, "proveedor_quick")
	}
}

// HandleFormInsumoCreate is the page's supply modal. The request carries the
// modal fields together with the whole order form; on success the order form
// comes back with the new supply selected in the last row, otherwise an
// error toast leaves the page and the open modal untouched.
func HandleFormInsumoCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form, err := loadPostedForm(app, e)
		if form == nil {
			return err
		}

		modal := modalFromRequest(e, templates.InsumoModalID, "/insumos/quick", insumoFields)
		quickcreate.PrefillSupplier(modal, form, "proveedor")

		resp, err := createInsumo(app, modal.Fields)
		if err != nil {
			log.Printf("insumo_modal: could not save: %v", err)
			return ErrorToast(e, http.StatusOK, quickcreate.GenericFailure)
		}

		bridge := quickcreate.NewBridge(nil, &toastNotifier{e: e})
		if !bridge.HandleResponse(&resp, modal, quickcreate.SupplyCreated(form, quickcreate.TargetAllRows)) {
			return e.String(http.StatusOK, "")
		}
		if form.Template != nil {
			form.Template = templates.NewRowTemplate(form.Prefix, form.Template.SupplyOptions)
		}

		SetToast(e, ToastSuccess, "Insumo "+resp.Nombre+" creado")
		return templates.CompraFormContent(compraFormDataFromRequest(e, form)).Render(e.Request.Context(), e.Response)
	}
}

// HandleFormProveedorCreate is the page's supplier modal; on success the new
// supplier becomes the order's supplier.
func HandleFormProveedorCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form, err := loadPostedForm(app, e)
		if form == nil {
			return err
		}

		modal := modalFromRequest(e, templates.ProveedorModalID, "/proveedores/quick", proveedorFields)

		resp, err := createProveedor(app, modal.Fields)
		if err != nil {
			log.Printf("proveedor_modal: could not save: %v", err)
			return ErrorToast(e, http.StatusOK, quickcreate.GenericFailure)
		}

		bridge := quickcreate.NewBridge(nil, &toastNotifier{e: e})
		if !bridge.HandleResponse(&resp, modal, quickcreate.SupplierCreated(form)) {
			return e.String(http.StatusOK, "")
		}

		SetToast(e, ToastSuccess, "Proveedor "+resp.Nombre+" creado")
		return templates.CompraFormContent(compraFormDataFromRequest(e, form)).Render(e.Request.Context(), e.Response)
	}
}

func modalFromRequest(e *core.RequestEvent, id, action string, fields []string) *quickcreate.ModalForm {
	modal := quickcreate.NewModalForm(id, action)
	for _, f := range fields {
		modal.Set(f, e.Request.PostForm.Get(f))
	}
	modal.Open()
	return modal
}

// compraFormDataFromRequest recovers which compra the modal was opened from.
func compraFormDataFromRequest(e *core.RequestEvent, form *orderform.Form) templates.CompraFormData {
	return templates.CompraFormData{CompraID: e.Request.PostForm.Get("compra_id"), Form: form}
}
