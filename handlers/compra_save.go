package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/orderform"
	"comprasweb/quickcreate"
	"comprasweb/templates"
)

var errForeignDetalle = errors.New("detalle does not belong to compra")

// HandleCompraSave stores a new compra from the posted order form.
func HandleCompraSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return saveCompra(app, e, "")
	}
}

// HandleCompraUpdate stores the posted order form over an existing compra.
func HandleCompraUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if _, err := app.FindRecordById("compras", id); err != nil {
			if isBackground(e.Request) {
				return e.JSON(http.StatusNotFound, quickcreate.Failed(nil, "Compra no encontrada"))
			}
			return ErrorToast(e, http.StatusNotFound, "Compra no encontrada")
		}
		return saveCompra(app, e, id)
	}
}

func saveCompra(app *pocketbase.PocketBase, e *core.RequestEvent, compraID string) error {
	background := isBackground(e.Request)

	opts, err := formOptions(app)
	if err != nil {
		log.Printf("compra_save: could not load catalog: %v", err)
		if background {
			return e.JSON(http.StatusInternalServerError, quickcreate.Failed(nil, quickcreate.GenericFailure))
		}
		return ErrorToast(e, http.StatusInternalServerError, "Algo salió mal. Intente nuevamente.")
	}

	form, err := parsePostedForm(e, opts)
	if err != nil {
		if background {
			return e.JSON(http.StatusBadRequest, quickcreate.Failed(nil, "Datos de formulario inválidos"))
		}
		return ErrorToast(e, http.StatusBadRequest, "Datos de formulario inválidos")
	}

	form.Initialize()
	if !form.Validate() {
		if background {
			return e.JSON(http.StatusBadRequest, quickcreate.Failed(issueErrors(form), "Revise los datos de la compra"))
		}
		SetToast(e, ToastWarning, "Revise los datos de la compra")
		return renderCompraForm(e, templates.CompraFormData{CompraID: compraID, Form: form, ShowIssues: true})
	}

	id, err := persistCompra(app, compraID, form)
	if err != nil {
		log.Printf("compra_save: could not save compra %q: %v", compraID, err)
		if background {
			return e.JSON(http.StatusInternalServerError, quickcreate.Failed(nil, quickcreate.GenericFailure))
		}
		return ErrorToast(e, http.StatusInternalServerError, "Algo salió mal. Intente nuevamente.")
	}

	if background {
		return e.JSON(http.StatusOK, quickcreate.Succeeded(id, form.Supplier.Label(form.Supplier.Value)))
	}

	SetToast(e, ToastSuccess, "Compra registrada correctamente")
	if isHTMX(e.Request) {
		e.Response.Header().Set("HX-Redirect", "/compras")
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, "/compras")
}

// issueErrors groups validation issues by submitted field name.
func issueErrors(form *orderform.Form) map[string][]string {
	errs := make(map[string][]string)
	for _, is := range form.Issues() {
		key := is.Field
		if is.Row >= 0 && is.Row < len(form.Rows) {
			key = form.FieldName(form.Rows[is.Row].Index, is.Field)
		}
		errs[key] = append(errs[key], is.Message)
	}
	return errs
}

// persistCompra writes the compra and its detalles in one transaction:
// new rows are created, stored rows updated and rows flagged DELETE
// removed. costo_total is the order form total.
func persistCompra(app *pocketbase.PocketBase, compraID string, form *orderform.Form) (string, error) {
	var savedID string

	err := app.RunInTransaction(func(txApp core.App) error {
		var compra *core.Record
		if compraID == "" {
			col, err := txApp.FindCollectionByNameOrId("compras")
			if err != nil {
				return fmt.Errorf("find compras collection: %w", err)
			}
			compra = core.NewRecord(col)
			compra.Set("fecha_compra", time.Now().Format("2006-01-02"))
		} else {
			rec, err := txApp.FindRecordById("compras", compraID)
			if err != nil {
				return fmt.Errorf("find compra %s: %w", compraID, err)
			}
			compra = rec
		}

		compra.Set("proveedor", form.Supplier.Value)
		compra.Set("forma_pago", form.PaymentMethod.Value)
		compra.Set("empleado", form.Employee.Value)
		compra.Set("costo_total", form.Total.InexactFloat64())
		if err := txApp.Save(compra); err != nil {
			return fmt.Errorf("save compra: %w", err)
		}

		detallesCol, err := txApp.FindCollectionByNameOrId("detalles_compra")
		if err != nil {
			return fmt.Errorf("find detalles_compra collection: %w", err)
		}

		sortOrder := 0
		for _, r := range form.Rows {
			var rec *core.Record
			if r.ID != "" {
				rec, err = txApp.FindRecordById("detalles_compra", r.ID)
				if err != nil {
					return fmt.Errorf("find detalle %s: %w", r.ID, err)
				}
				if rec.GetString("compra") != compra.Id {
					return fmt.Errorf("detalle %s: %w %s", r.ID, errForeignDetalle, compra.Id)
				}
			}

			if r.Deleted {
				if rec != nil {
					if err := txApp.Delete(rec); err != nil {
						return fmt.Errorf("delete detalle %s: %w", r.ID, err)
					}
				}
				continue
			}

			if rec == nil {
				rec = core.NewRecord(detallesCol)
				rec.Set("compra", compra.Id)
			}
			rec.Set("insumo", r.Supply.Value)
			rec.Set("sort_order", sortOrder)
			rec.Set("cantidad", r.QuantityValue().InexactFloat64())
			rec.Set("precio_unitario", r.PriceValue().InexactFloat64())
			if err := txApp.Save(rec); err != nil {
				return fmt.Errorf("save detalle row %d: %w", r.Index, err)
			}
			sortOrder++
		}

		savedID = compra.Id
		return nil
	})

	return savedID, err
}
