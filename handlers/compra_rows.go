package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"comprasweb/orderform"
	"comprasweb/templates"
)

// The row commands below receive the whole order form (hx-include) and
// answer with the affected row plus out-of-band counters, total and submit
// gate. Nothing is stored.

// HandleRowAdd appends a row created from the row template.
func HandleRowAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form, err := loadPostedForm(app, e)
		if form == nil {
			return err
		}

		_, markup, err := form.AddRow()
		if errors.Is(err, orderform.ErrNoTemplate) {
			return ErrorToast(e, http.StatusConflict, "No se pueden agregar filas a este formulario")
		}
		if err != nil {
			log.Printf("compra_rows: add row: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo salió mal. Intente nuevamente.")
		}

		return templates.NewRowMarkup(form, markup).Render(e.Request.Context(), e.Response)
	}
}

// HandleRowRecalc recomputes the row named by the "row" field. Without one
// (a header select changed) the whole form is re-evaluated and only the
// form state is returned.
func HandleRowRecalc(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		form, err := loadPostedForm(app, e)
		if form == nil {
			return err
		}

		rowParam := e.Request.PostForm.Get("row")
		if rowParam == "" {
			return templates.FormState(form).Render(e.Request.Context(), e.Response)
		}

		idx, err := strconv.Atoi(rowParam)
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Fila inválida")
		}
		row := form.RowByIndex(idx)
		if row == nil {
			return ErrorToast(e, http.StatusNotFound, "Fila no encontrada")
		}

		form.RecomputeRow(row)
		return templates.DetalleRow(form, row).Render(e.Request.Context(), e.Response)
	}
}

// HandleRowDelete removes a row. Stored rows come back hidden with their
// DELETE flag set; new rows are replaced by nothing.
func HandleRowDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		idx, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Fila inválida")
		}

		form, err := loadPostedForm(app, e)
		if form == nil {
			return err
		}

		row := form.RowByIndex(idx)
		if err := form.DeleteRow(idx); err != nil {
			if errors.Is(err, orderform.ErrRowNotFound) {
				return ErrorToast(e, http.StatusNotFound, "Fila no encontrada")
			}
			log.Printf("compra_rows: delete row %d: %v", idx, err)
			return ErrorToast(e, http.StatusInternalServerError, "Algo salió mal. Intente nuevamente.")
		}

		if row.Persisted {
			return templates.DetalleRow(form, row).Render(e.Request.Context(), e.Response)
		}
		return templates.FormState(form).Render(e.Request.Context(), e.Response)
	}
}

// loadPostedForm parses the posted order form against the current catalog
// and initializes it, so every subtotal and the total are derived from the
// posted quantities and prices rather than trusted. A nil form means the
// error response was already written; err is whatever writing it returned.
func loadPostedForm(app *pocketbase.PocketBase, e *core.RequestEvent) (*orderform.Form, error) {
	opts, err := formOptions(app)
	if err != nil {
		log.Printf("compra_rows: could not load catalog: %v", err)
		return nil, ErrorToast(e, http.StatusInternalServerError, "No se pudo cargar el formulario")
	}
	form, err := parsePostedForm(e, opts)
	if err != nil {
		return nil, ErrorToast(e, http.StatusBadRequest, "Datos de formulario inválidos")
	}
	form.Initialize()
	return form, nil
}
